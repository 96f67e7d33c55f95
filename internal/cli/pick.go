package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dresscode"
	"github.com/goliatone/go-dresscode/pkg/model"
	"github.com/goliatone/go-dresscode/pkg/privacy"
)

func newPickCommand(app *App) *cobra.Command {
	var bundlePath, out string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively choose a saved profile and privacy level, then render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				records  dresscode.Records
				profiles []model.Profile
			)
			if bundlePath != "" {
				bundle, err := loadBundle(bundlePath)
				if err != nil {
					return fmt.Errorf("pick: load bundle: %w", err)
				}
				records, profiles = bundle, bundle.Profiles
			} else {
				s, err := app.openStore(ctx)
				if err != nil {
					return err
				}
				defer s.Close()
				loaded, err := s.Profiles.Load(ctx)
				if err != nil {
					return err
				}
				records, profiles = s, loaded
			}
			if len(profiles) == 0 {
				return errors.New("pick: no saved profiles; run import first")
			}

			options := make([]string, len(profiles))
			for i, p := range profiles {
				options[i] = profileLabel(p)
			}
			idx, err := app.prompts.Select(ctx, SelectConfig{Message: "Profile", Options: options, PageSize: 10})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(profiles) {
				return errors.New("pick: no profile selected")
			}
			profile := profiles[idx]

			levels := privacy.Levels()
			levelOptions := make([]string, len(levels))
			defaultLevel := 0
			for i, level := range levels {
				levelOptions[i] = level.String()
				if level == dresscode.LevelOf(profile.PrivacyLevel) {
					defaultLevel = i
				}
			}
			levelIdx, err := app.prompts.Select(ctx, SelectConfig{
				Message:      "Privacy level",
				Options:      levelOptions,
				DefaultIndex: defaultLevel,
				Help:         "Fields labelled above this level are hidden.",
			})
			if err != nil {
				return err
			}
			if levelIdx < 0 || levelIdx >= len(levels) {
				return errors.New("pick: no privacy level selected")
			}

			req, err := dresscode.ProfileRequest(ctx, records, profile.ID)
			if err != nil {
				return err
			}
			req.PrivacyLevel = levels[levelIdx]

			target := out
			if target == "" {
				target = profile.ID + "-" + req.PrivacyLevel.String() + ".png"
			}
			url, err := app.newComposer().Compose(ctx, req)
			if err != nil {
				return err
			}
			return app.writeImage(url, target)
		},
	}
	cmd.Flags().StringVar(&bundlePath, "bundle", "", "choose from a document file or directory instead of the database")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG path (default <profile>-<level>.png)")
	return cmd
}

func profileLabel(p model.Profile) string {
	if p.Name == "" {
		return p.ID
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.ID)
}
