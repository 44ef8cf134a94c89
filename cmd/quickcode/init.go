package main

import (
	"github.com/spf13/cobra"

	"github.com/quickcode-ui/quickcode/internal/config"
	"github.com/quickcode-ui/quickcode/internal/setup"
)

func initCmd(root *rootOptions) *cobra.Command {
	var cwd string
	var writeConfig bool

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"postinstall"},
		Short:   "Set up QuickCode UI in your project",
		Long: `Set up QuickCode UI in your project.

This prepares the files components depend on:
  • lib/utils.ts    - the cn() class name helper (added if missing)
  • app/globals.css - the QuickCode theme (the old file is kept as .bak)

Both live under src/ when the project has a src directory. When run from
inside node_modules, as a package install script, the project that owns
node_modules is patched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(root, cwd, writeConfig)
		},
	}

	cmd.Flags().StringVar(&cwd, "cwd", "", "Project directory (default: current directory)")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write quickcode.json with the default settings if it is missing")
	return cmd
}

func runInit(root *rootOptions, cwd string, writeConfig bool) error {
	dir, err := projectDir(cwd)
	if err != nil {
		return err
	}

	projectRoot := config.ProjectRoot(dir)
	cfg, err := config.LoadOrDefault(projectRoot)
	if err != nil {
		return err
	}

	info("Setting up QuickCode UI...")

	report, err := setup.New(cfg.Layout(), root.logger()).Run()
	if err != nil {
		errorMsg("Setup failed")
		return err
	}

	switch report.Utils {
	case setup.UtilsCreated:
		success("utils.ts created")
	case setup.UtilsPrepended:
		success("cn function prepended to utils.ts")
	case setup.UtilsUnchanged:
		info("cn function already exists in utils.ts, skipping...")
	}

	if report.GlobalsBackup != "" {
		info("Backup created: globals.css.bak")
	}
	success("globals.css created/overwritten")
	if writeConfig {
		if config.Exists(projectRoot) {
			info("%s already exists, leaving it alone", config.ConfigFileName)
		} else {
			if err := cfg.Save(); err != nil {
				return err
			}
			success("%s created", config.ConfigFileName)
		}
	}

	success("QuickCode UI setup completed!")

	return nil
}
