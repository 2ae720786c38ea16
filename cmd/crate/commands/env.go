package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a new environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Manager().CreateEnv(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <name>",
		Short: "Switch to an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Manager().SwitchEnv(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Manager().DeleteEnv(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List environments",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			current := c.app.Manager().CurrentEnv()
			for _, name := range c.app.Manager().Environments() {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
		},
	})

	return cmd
}
