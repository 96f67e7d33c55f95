// Package composer draws a template onto an offscreen surface using
// environment data filtered to a privacy level, and encodes the result as a
// PNG data URL.
//
// Asset loads (background first, then image elements in order) run one after
// another and never abort the composition: a failed background is logged as a
// warning, a failed image element is logged once as an error and skipped.
package composer
