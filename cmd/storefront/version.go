package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/storefront/version"
)

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"offline": "true"},
		RunE: func(*cobra.Command, []string) error {
			info := version.Get()
			return c.out.show(info, func() {
				c.out.line("%s", info.String())
			})
		},
	}
}
