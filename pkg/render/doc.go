// Package render records drawable layers on an offscreen Surface and
// rasterises them into an RGBA image, bottom layer first.
//
// Image layers are scaled with golang.org/x/image/draw; text layers are
// typeset with the Go font families through golang.org/x/image/font. Encoded
// output is a PNG data URL at a pixel ratio of 1.
package render
