package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func listCmd(root *rootOptions) *cobra.Command {
	var registryURL, cwd string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available components",
		Long: `List all components in the component map.

Components already present in the project are marked with ✓.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), root, registryURL, cwd)
		},
	}

	addRegistryFlags(cmd, &registryURL, &cwd)
	return cmd
}

func runList(ctx context.Context, root *rootOptions, registryURL, cwd string) error {
	proj, err := loadProject(ctx, cwd, registryURL)
	if err != nil {
		return err
	}
	root.logger().Debug("registry loaded", "url", proj.cfg.Registry, "components", len(proj.reg.Components))

	layout := proj.cfg.Layout()

	fmt.Fprintln(stdout, "  Available QuickCode Components:")
	fmt.Fprintln(stdout)

	for _, name := range proj.reg.Names() {
		comp := proj.reg.Components[name]

		status := "    "
		if path, err := layout.ComponentPath(name); err == nil {
			if _, err := os.Stat(path); err == nil {
				status = " ✓  "
			}
		}

		extra := ""
		if len(comp.Requires) > 0 {
			extra = fmt.Sprintf(" (requires: %s)", strings.Join(comp.Requires, ", "))
		}

		fmt.Fprintf(stdout, "%s%s%s\n", status, name, extra)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  %d components in %s\n", len(proj.reg.Components), proj.cfg.Registry)
	fmt.Fprintln(stdout)

	return nil
}
