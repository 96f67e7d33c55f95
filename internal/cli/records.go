package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-dresscode/internal/store"
	"github.com/goliatone/go-dresscode/pkg/document"
)

const (
	kindTemplates    = "templates"
	kindEnvironments = "environments"
	kindProfiles     = "profiles"
)

var recordKinds = []string{kindTemplates, kindEnvironments, kindProfiles}

func normaliseKind(raw string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasSuffix(kind, "s") {
		kind += "s"
	}
	for _, candidate := range recordKinds {
		if candidate == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q (want %s)", raw, strings.Join(recordKinds, ", "))
}

func newImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH...",
		Short: "Import template, environment and profile documents into the database",
		Long: `Import JSON, JSONC or YAML documents. Each PATH may be a file or a
directory; directories are walked recursively. Records without an id receive
a generated one; existing ids are replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bundle document.Bundle
			for _, path := range args {
				parsed, err := loadBundle(path)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				bundle.Merge(parsed)
			}
			if bundle.Empty() {
				return fmt.Errorf("import: no documents found in %s", strings.Join(args, ", "))
			}

			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			return app.importBundle(cmd.Context(), s, bundle)
		},
	}
}

func (a *App) importBundle(ctx context.Context, s *store.Store, bundle document.Bundle) error {
	templates, err := s.Templates.ImportMany(ctx, bundle.Templates)
	if err != nil {
		return err
	}
	environments, err := s.Environments.ImportMany(ctx, bundle.Environments)
	if err != nil {
		return err
	}
	profiles, err := s.Profiles.ImportMany(ctx, bundle.Profiles)
	if err != nil {
		return err
	}
	a.logger.Debug("import finished",
		zap.Int(kindTemplates, len(templates)),
		zap.Int(kindEnvironments, len(environments)),
		zap.Int(kindProfiles, len(profiles)),
	)
	a.printf("imported %d templates, %d environments, %d profiles\n", len(templates), len(environments), len(profiles))
	return nil
}

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "list [templates|environments|profiles]",
		Short:     "List stored records",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: recordKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := recordKinds
			if len(args) == 1 {
				kind, err := normaliseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []string{kind}
			}

			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			w := tabwriter.NewWriter(app.stdout, 0, 4, 2, ' ', 0)
			for _, kind := range kinds {
				if err := listKind(cmd.Context(), w, s, kind); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}

func listKind(ctx context.Context, w io.Writer, s *store.Store, kind string) error {
	switch kind {
	case kindTemplates:
		items, err := s.Templates.Load(ctx)
		if err != nil {
			return err
		}
		for _, tpl := range items {
			fmt.Fprintf(w, "template\t%s\t%s\t%dx%d, %d elements\n", tpl.ID, tpl.Name, tpl.Width, tpl.Height, len(tpl.Elements))
		}
	case kindEnvironments:
		items, err := s.Environments.Load(ctx)
		if err != nil {
			return err
		}
		for _, env := range items {
			fmt.Fprintf(w, "environment\t%s\t%s\t\n", env.ID, env.Name)
		}
	case kindProfiles:
		items, err := s.Profiles.Load(ctx)
		if err != nil {
			return err
		}
		for _, p := range items {
			fmt.Fprintf(w, "profile\t%s\t%s\ttemplate=%s environment=%s level=%s\n", p.ID, p.Name, p.TemplateID, p.EnvironmentID, p.PrivacyLevel)
		}
	}
	return nil
}

func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove KIND ID",
		Short: "Remove a stored template, environment or profile",
		Long: `Remove a stored record by id. Removing an id that does not exist is
not an error.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := normaliseKind(args[0])
			if err != nil {
				return err
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, id := cmd.Context(), args[1]
			switch kind {
			case kindTemplates:
				err = s.Templates.Remove(ctx, id)
			case kindEnvironments:
				err = s.Environments.Remove(ctx, id)
			case kindProfiles:
				err = s.Profiles.Remove(ctx, id)
			}
			singular := strings.TrimSuffix(kind, "s")
			if errors.Is(err, store.ErrNotFound) {
				app.logger.Warn("nothing to remove", zap.String("kind", singular), zap.String("id", id))
				app.printf("%s %s not found; nothing removed\n", singular, id)
				return nil
			}
			if err != nil {
				return err
			}
			app.printf("removed %s %s\n", singular, id)
			return nil
		},
	}
}
