// Package assets defines how image URLs referenced by templates are fetched
// and decoded. The concrete strategies (HTTP, data URLs, local files, fs.FS)
// live behind the Loader interface; construct one with dresscode.NewLoader.
//
// PNG, JPEG, GIF, WebP, BMP and TIFF decoders are registered on import.
package assets
