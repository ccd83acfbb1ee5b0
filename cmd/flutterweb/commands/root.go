// Package commands implements the CLI commands for flutterweb.
package commands

import (
	"context"
	"io"

	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	"github.com/AlsoShantanuBorkar/flutter/internal/build"
	"github.com/AlsoShantanuBorkar/flutter/internal/core/ports"
	"github.com/spf13/cobra"
)

// verbosity is implemented by loggers that can toggle trace output.
type verbosity interface {
	SetVerbose(enable bool)
}

// jsonOutput is implemented by loggers that can emit JSON lines.
type jsonOutput interface {
	SetJSON(enable bool)
}

// CLI represents the command line interface for flutterweb.
type CLI struct {
	app     *app.App
	loader  ports.ProjectLoader
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "flutterweb",
		Short:         "Build Flutter applications for the web",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show trace output")
	rootCmd.PersistentFlags().Bool("json", false, "Write log output as JSON lines")

	cli := &CLI{
		app:     c.App,
		loader:  c.Loader,
		logger:  c.Logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if v, ok := cli.logger.(verbosity); ok {
			v.SetVerbose(verbose)
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		if j, ok := cli.logger.(jsonOutput); ok {
			j.SetJSON(asJSON)
		}
	}

	rootCmd.AddCommand(cli.newBuildCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the destination of usage and command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}
