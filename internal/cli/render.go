package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dresscode"
	"github.com/goliatone/go-dresscode/pkg/document"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/privacy"
)

type renderFlags struct {
	template    string
	environment string
	level       string
	background  string
	profile     string
	bundle      string
	out         string
}

func newRenderCommand(app *App) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template or a saved profile to PNG",
		Long: `Render a template with environment data filtered to a privacy level.

Examples:
  dresscode render --template badge.yaml --environment staff.yaml --level medium --out badge.png
  dresscode render --profile badge-public --out public.png
  dresscode render --bundle ./samples --profile badge-team`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := app.render(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return app.writeImage(url, flags.out)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.template, "template", "t", "", "template document")
	f.StringVarP(&flags.environment, "environment", "e", "", "environment document")
	f.StringVarP(&flags.level, "level", "l", "", "privacy level (low, medium, high); defaults to privacy.default_level")
	f.StringVar(&flags.background, "background", "", "static background image URL or path")
	f.StringVarP(&flags.profile, "profile", "p", "", "saved profile id")
	f.StringVar(&flags.bundle, "bundle", "", "resolve --profile from a document file or directory instead of the database")
	f.StringVarP(&flags.out, "out", "o", "", "output PNG path (prints the data URL when empty)")
	return cmd
}

func (a *App) render(ctx context.Context, flags *renderFlags) (string, error) {
	if flags.profile != "" {
		return a.renderProfile(ctx, flags)
	}
	if flags.template == "" || flags.environment == "" {
		return "", errors.New("render: --template and --environment are required without --profile")
	}

	req, err := a.fileRequest(flags)
	if err != nil {
		return "", err
	}
	return a.newComposer().Compose(ctx, req)
}

func (a *App) renderProfile(ctx context.Context, flags *renderFlags) (string, error) {
	var records dresscode.Records
	if flags.bundle != "" {
		bundle, err := loadBundle(flags.bundle)
		if err != nil {
			return "", fmt.Errorf("render: load bundle: %w", err)
		}
		records = bundle
	} else {
		s, err := a.openStore(ctx)
		if err != nil {
			return "", err
		}
		defer s.Close()
		records = s
	}

	req, err := dresscode.ProfileRequest(ctx, records, flags.profile)
	if err != nil {
		return "", err
	}
	if flags.level != "" {
		level, err := privacy.ParseLevel(flags.level)
		if err != nil {
			return "", err
		}
		req.PrivacyLevel = level
	}
	if flags.background != "" {
		req.Background = &model.Background{Mode: model.BackgroundStatic, Src: flags.background}
	}
	return a.newComposer().Compose(ctx, req)
}

func (a *App) fileRequest(flags *renderFlags) (dresscode.Request, error) {
	level := a.cfg.DefaultLevel()
	if flags.level != "" {
		parsed, err := privacy.ParseLevel(flags.level)
		if err != nil {
			return dresscode.Request{}, err
		}
		level = parsed
	}

	data, err := os.ReadFile(flags.template)
	if err != nil {
		return dresscode.Request{}, fmt.Errorf("render: read template: %w", err)
	}
	tpl, err := document.ParseTemplate(data, flags.template)
	if err != nil {
		return dresscode.Request{}, err
	}

	data, err = os.ReadFile(flags.environment)
	if err != nil {
		return dresscode.Request{}, fmt.Errorf("render: read environment: %w", err)
	}
	env, err := document.ParseEnvironment(data, flags.environment)
	if err != nil {
		return dresscode.Request{}, err
	}

	background := tpl.Background
	if flags.background != "" {
		background = &model.Background{Mode: model.BackgroundStatic, Src: flags.background}
	}
	return dresscode.Request{
		Template:     tpl,
		Data:         env.Data,
		PrivacyLevel: level,
		Background:   background,
	}, nil
}
