package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <spec>",
		Short: "Install a package, e.g. 'pkg' or 'pkg>=1.0,<2.0'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offline, _ := cmd.Flags().GetBool("offline")
			plan, err := c.app.Install(cmd.Context(), args[0], offline)
			if err != nil {
				return err
			}
			for _, name := range plan.Order {
				fmt.Printf("installed %s@%s\n", name, plan.Versions[name])
			}
			if plan.Len() == 0 {
				fmt.Println("already satisfied")
			}
			return nil
		},
	}
	cmd.Flags().Bool("offline", false, "Restrict resolution to local sources")
	return cmd
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a package and its orphaned dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Remove(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages in the current environment",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			packages, err := c.app.Manager().List()
			if err != nil {
				return err
			}
			for _, pkg := range packages {
				fmt.Printf("%s %s\n", pkg.Name, pkg.Version)
			}
			return nil
		},
	}
}
