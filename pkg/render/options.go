package render

// DefaultJPEGQuality applies when EncodeOptions.Quality is unset.
const DefaultJPEGQuality = 90

// EncodeOptions tune lossy encoders. Lossless formats ignore them.
type EncodeOptions struct {
	// Quality ranges from 1 to 100. Zero selects DefaultJPEGQuality and
	// out-of-range values are clamped.
	Quality int
}

func (o EncodeOptions) quality() int {
	switch {
	case o.Quality == 0:
		return DefaultJPEGQuality
	case o.Quality < 1:
		return 1
	case o.Quality > 100:
		return 100
	default:
		return o.Quality
	}
}
