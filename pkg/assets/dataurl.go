package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DataURL is a decoded RFC 2397 data URL.
type DataURL struct {
	MediaType string
	Data      []byte
}

// ParseDataURL decodes "data:[<mediatype>][;base64],<data>".
func ParseDataURL(raw string) (DataURL, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 5 || !strings.EqualFold(trimmed[:5], "data:") {
		return DataURL{}, errors.New("assets: not a data url")
	}
	rest := trimmed[5:]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return DataURL{}, errors.New("assets: data url missing payload separator")
	}
	meta, payload := rest[:comma], rest[comma+1:]

	encoded := false
	params := strings.Split(meta, ";")
	if last := params[len(params)-1]; strings.EqualFold(last, "base64") {
		encoded = true
		params = params[:len(params)-1]
	}
	mediaType := strings.TrimSpace(params[0])
	if mediaType == "" {
		mediaType = "text/plain"
	}

	var (
		data []byte
		err  error
	)
	if encoded {
		data, err = base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(payload), "="))
		}
	} else {
		var text string
		text, err = url.PathUnescape(payload)
		data = []byte(text)
	}
	if err != nil {
		return DataURL{}, fmt.Errorf("assets: decode data url: %w", err)
	}
	return DataURL{MediaType: strings.ToLower(mediaType), Data: data}, nil
}
