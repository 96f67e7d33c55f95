package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dresscode/pkg/document"
)

func newLintCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lint PATH...",
		Short: "Check template, environment and profile documents for problems",
		Long: `Lint documents before importing them. Reports empty canvases, unknown
element types, unknown privacy labels, profiles that reference missing records
and placeholders that do not resolve. Exits non-zero when anything is found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bundle document.Bundle
			for _, path := range args {
				parsed, err := loadBundle(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				bundle.Merge(parsed)
			}

			violations := document.Lint(bundle)
			for _, v := range violations {
				_, _ = fmt.Fprintln(app.stderr, v.String())
			}
			if len(violations) > 0 {
				return fmt.Errorf("lint: %d problem(s) in %s", len(violations), strings.Join(args, ", "))
			}
			app.printf("no problems found\n")
			return nil
		},
	}
}
