package composer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-dresscode/internal/assets/loader"
	"github.com/goliatone/go-dresscode/pkg/assets"
	"github.com/goliatone/go-dresscode/pkg/hydrate"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/privacy"
	"github.com/goliatone/go-dresscode/pkg/render"
)

// ErrInvalidTemplate is returned when a template cannot produce a surface.
var ErrInvalidTemplate = errors.New("composer: invalid template")

// Option customises the composer configuration.
type Option func(*Composer)

// WithLoader injects the asset loader used for backgrounds and image elements.
func WithLoader(loader assets.Loader) Option {
	return func(c *Composer) {
		c.loader = loader
	}
}

// WithLogger routes asset failures to logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// WithHydrators replaces the per-type hydrator registry.
func WithHydrators(registry *hydrate.Registry) Option {
	return func(c *Composer) {
		c.hydrators = registry
	}
}

// WithTextStyle overrides the base style merged under every text element.
func WithTextStyle(style render.TextStyle) Option {
	return func(c *Composer) {
		c.textStyle = style
		c.textStyleSet = true
	}
}

// WithFonts supplies the font families available to text layers.
func WithFonts(fonts *render.FontBook) Option {
	return func(c *Composer) {
		c.fonts = fonts
	}
}

// WithTextSanitizer sets a function applied to hydrated text before it is
// drawn, e.g. render.SanitizeText to strip markup. Text is drawn verbatim by
// default.
func WithTextSanitizer(fn func(string) string) Option {
	return func(c *Composer) {
		c.sanitize = fn
	}
}

// Composer turns a template plus privacy-filtered environment data into a
// raster image. It is immutable after New and safe for concurrent use; every
// call owns its own surface.
type Composer struct {
	loader       assets.Loader
	logger       *zap.Logger
	hydrators    *hydrate.Registry
	textStyle    render.TextStyle
	textStyleSet bool
	fonts        *render.FontBook
	sanitize     func(string) string
}

// New constructs a Composer applying any provided options. Missing
// dependencies are initialised with the built-in implementations. The default
// loader fetches http(s) and data URLs only; pass WithLoader with file access
// enabled to read local paths.
func New(options ...Option) *Composer {
	c := &Composer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.applyDefaults()
	return c
}

func (c *Composer) applyDefaults() {
	if c.loader == nil {
		c.loader = internalLoader.New(assets.NewLoaderOptions(assets.WithDefaultSources(), assets.WithoutFiles()))
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.hydrators == nil {
		c.hydrators = hydrate.DefaultRegistry()
	}
	if !c.textStyleSet {
		c.textStyle = render.DefaultTextStyle
	}
	if c.fonts == nil {
		c.fonts = render.DefaultFontBook()
	}
}

// Request describes one composition.
type Request struct {
	// Template is the layout to draw.
	Template model.Template

	// Data is the unfiltered environment tree (Environment.Data).
	Data any

	// PrivacyLevel is the target disclosure level applied to Data.
	PrivacyLevel privacy.Level

	// Background, when static with a src, is drawn full-surface beneath every
	// element. The template's own background is not consulted here.
	Background *model.Background
}

// Compose renders req and returns a PNG data URL. Asset failures are logged
// and skipped; only misuse (nil or cancelled context, empty template size)
// is reported as an error.
func (c *Composer) Compose(ctx context.Context, req Request) (string, error) {
	surface, err := c.BuildSurface(ctx, req)
	if err != nil {
		return "", err
	}
	defer surface.Release()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	img, err := surface.Rasterize()
	if err != nil {
		return "", fmt.Errorf("composer: rasterize: %w", err)
	}
	url, err := render.EncodeDataURL(img)
	if err != nil {
		return "", fmt.Errorf("composer: %w", err)
	}
	return url, nil
}

// BuildSurface performs every step of Compose up to rasterisation and returns
// the populated surface. The caller owns the surface and should Release it.
func (c *Composer) BuildSurface(ctx context.Context, req Request) (*render.Surface, error) {
	if ctx == nil {
		return nil, errors.New("composer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tpl := req.Template
	if tpl.Width <= 0 || tpl.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidTemplate, tpl.Width, tpl.Height)
	}

	data := privacy.FilterValue(req.Data, req.PrivacyLevel)

	surface, err := render.NewSurface(tpl.Width, tpl.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	elements := make([]model.Element, len(tpl.Elements))
	for i, element := range tpl.Elements {
		elements[i] = c.hydrators.Hydrate(element, data)
	}

	plan := planTasks(req.Background, elements)
	results := runTasks(ctx, c.loader, plan)

	if err := c.assemble(surface, tpl, elements, plan, results); err != nil {
		surface.Release()
		return nil, err
	}
	return surface, nil
}

func (c *Composer) assemble(surface *render.Surface, tpl model.Template, elements []model.Element, plan []task, results []Result) error {
	loaded := make(map[int]Result, len(plan))
	for i, t := range plan {
		res := results[i]
		if t.background {
			if err := c.addBackground(surface, tpl, t, res); err != nil {
				return err
			}
			continue
		}
		loaded[t.element] = res
	}

	for i, element := range elements {
		var layer render.Layer
		switch element.Type {
		case model.ElementTypeText:
			layer = c.textLayer(element)
		case model.ElementTypeImage:
			res, ok := loaded[i]
			if !ok {
				continue
			}
			if res.Err != nil {
				c.logger.Error("image load failed",
					zap.Int("element", i),
					zap.String("id", element.ID),
					zap.String("src", describe(element.Src)),
					zap.Error(res.Err),
				)
				continue
			}
			if res.Image == nil {
				continue
			}
			layer = render.ImageLayer{
				Source: element.Src,
				Image:  res.Image,
				Box:    render.BoxFromProps(element.Props),
			}
		default:
			c.logger.Debug("skipping element with unsupported type",
				zap.Int("element", i),
				zap.String("type", string(element.Type)),
			)
			continue
		}
		if err := surface.Add(layer); err != nil {
			return fmt.Errorf("composer: add layer %d: %w", i, err)
		}
	}
	return nil
}

func (c *Composer) addBackground(surface *render.Surface, tpl model.Template, t task, res Result) error {
	if res.Err != nil {
		c.logger.Warn("background image load failed",
			zap.String("src", describe(t.src)),
			zap.Error(res.Err),
		)
		return nil
	}
	if res.Image == nil {
		return nil
	}
	err := surface.Add(render.ImageLayer{
		Source:     t.src,
		Image:      res.Image,
		Box:        render.Box{Width: float64(tpl.Width), Height: float64(tpl.Height), Opacity: 1},
		Background: true,
	})
	if err != nil {
		return fmt.Errorf("composer: add background: %w", err)
	}
	return nil
}

func (c *Composer) textLayer(element model.Element) render.TextLayer {
	text := element.Text
	if c.sanitize != nil {
		text = c.sanitize(text)
	}
	return render.TextLayer{
		Text:  text,
		Style: c.textStyle.Merge(element.Props),
		Box:   render.BoxFromProps(element.Props),
		Fonts: c.fonts,
	}
}

// describe shortens inline data URLs so log lines stay readable.
func describe(src string) string {
	const limit = 96
	if len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}
