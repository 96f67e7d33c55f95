// Package document reads templates, environments and profiles from JSON,
// JSON with comments, or YAML files. Bundles group several records so a
// directory or a single file can be imported in one call.
package document
