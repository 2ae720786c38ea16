package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *CLI) newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [env]",
		Short: "List snapshots of an environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			envName := c.app.Manager().CurrentEnv()
			if len(args) > 0 {
				envName = args[0]
			}
			snapshots, err := c.app.Manager().Snapshots(envName)
			if err != nil {
				return err
			}
			for _, snap := range snapshots {
				fmt.Printf("%d\t%s\t%d packages\n",
					snap.ID,
					snap.Taken.Format("2006-01-02 15:04:05"),
					len(snap.Installed),
				)
			}
			return nil
		},
	}
}

func (c *CLI) newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <env> <snapshot-id>",
		Short: "Restore an environment from a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid snapshot id %q", args[1])
			}
			return c.app.Manager().Rollback(args[0], id)
		},
	}
}

func (c *CLI) newFreezeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze",
		Short: "Export the current environment to a lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Freeze(cmd.Context())
		},
	}
}

func (c *CLI) newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [lock-name]",
		Short: "Replace the current environment from a lockfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lockName := c.app.Manager().CurrentEnv()
			if len(args) > 0 {
				lockName = args[0]
			}
			return c.app.Apply(cmd.Context(), lockName)
		},
	}
}
