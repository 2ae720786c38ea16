package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/crate/internal/core/domain"
)

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <substring>",
		Short: "Search the package sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constraintStr, _ := cmd.Flags().GetString("constraint")
			var spec *domain.Spec
			if constraintStr != "" {
				constraints, err := domain.ParseConstraints(constraintStr)
				if err != nil {
					return err
				}
				spec = &domain.Spec{Name: args[0], Constraints: constraints}
			}
			for _, pkg := range c.app.Manager().Search(args[0], spec) {
				fmt.Printf("%s %s\n", pkg.Name, pkg.Version)
			}
			return nil
		},
	}
	cmd.Flags().String("constraint", "", "Version constraint filter, e.g. '>=1.0'")
	return cmd
}

func (c *CLI) newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Scan installed packages against the vulnerability feed",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			hits, err := c.app.Manager().AuditVulnerabilities()
			if err != nil {
				return err
			}
			for _, adv := range hits {
				fmt.Printf("%s: %s@%s\n", adv.ID, adv.Name, adv.Version)
			}
			if len(hits) == 0 {
				fmt.Println("no known vulnerabilities")
			}
			return nil
		},
	}
}

func (c *CLI) newUpdatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "updates",
		Short: "List installed packages with newer versions available",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			updates, err := c.app.Manager().ListUpdates()
			if err != nil {
				return err
			}
			for name, u := range updates {
				fmt.Printf("%s %s -> %s\n", name, u.Current, u.Latest)
			}
			return nil
		},
	}
}

func (c *CLI) newWhyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "why <name>",
		Short: "Explain why a package is installed",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			chain, err := c.app.Manager().Explain(args[0])
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(chain, " <- "))
			return nil
		},
	}
}

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name> <version>",
		Short: "Show a package's dependencies and version history",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			meta, err := c.app.Manager().ShowMetadata(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", meta.Package.ID())
			for _, dep := range meta.Package.Dependencies {
				fmt.Printf("  requires %s\n", dep.Spec())
			}
			fmt.Printf("versions: %s\n", strings.Join(meta.History, ", "))
			return nil
		},
	}
}
