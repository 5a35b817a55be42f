package main

import (
	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/store"
)

type themeView struct {
	Theme store.Theme `json:"theme" yaml:"theme"`
}

func newThemeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the output theme",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.showTheme()
		},
	}

	set := &cobra.Command{
		Use:       "set <light|dark>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
		RunE: func(_ *cobra.Command, args []string) error {
			theme, err := store.ParseTheme(args[0])
			if err != nil {
				return apperrors.Validation(err.Error())
			}
			if err := c.app.Theme.SetTheme(theme); err != nil {
				return apperrors.Storage("save theme", err)
			}
			return c.showTheme()
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if _, err := c.app.Theme.Toggle(); err != nil {
				return apperrors.Storage("save theme", err)
			}
			return c.showTheme()
		},
	}

	cmd.AddCommand(set, toggle)
	return cmd
}

func (c *cli) showTheme() error {
	v := themeView{Theme: c.app.Theme.Get()}
	return c.out.show(v, func() {
		c.out.line("Theme: %s", c.out.st.accent.Render(string(v.Theme)))
	})
}
