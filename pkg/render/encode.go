package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

const (
	// MIMETypePNG is the media type of data URL surfaces.
	MIMETypePNG  = "image/png"
	MIMETypeJPEG = "image/jpeg"
)

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// Encode runs encoder over img and returns the bytes.
func Encode(encoder Encoder, img image.Image, options EncodeOptions) ([]byte, error) {
	if encoder == nil {
		encoder = PNG
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img, options); err != nil {
		return nil, fmt.Errorf("render: encode %s: %w", encoder.Name(), err)
	}
	return buf.Bytes(), nil
}

// EncodePNG encodes img as PNG. Output is deterministic for identical pixels.
func EncodePNG(img image.Image) ([]byte, error) {
	return Encode(PNG, img, EncodeOptions{})
}

// DataURL wraps encoded bytes in a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// EncodeDataURL encodes img as a PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return DataURL(MIMETypePNG, data), nil
}
