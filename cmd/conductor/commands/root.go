// Package commands implements the CLI commands for conductor.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/conductor/internal/app"
	"go.trai.ch/conductor/internal/build"
	"go.trai.ch/conductor/internal/settings"
)

// CLI represents the command line interface for conductor.
type CLI struct {
	app      Application
	settings *settings.Settings
	rootCmd  *cobra.Command
	args     []string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targetNames []string, opts app.RunOptions) error
	Setup(ctx context.Context, opts app.SetupOptions) error
	Targets(configFile string) (app.Targets, error)
	SetLogLevel(level slog.Level)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app:      a,
		settings: settings.New(),
	}

	rootCmd := &cobra.Command{
		Use:   "conductor",
		Short: "Run local development environments made of many projects",
		Long: "Conductor launches and initializes every component of a project at once.\n" +
			"The project structure is defined in a conductor.yml file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.SetLogLevel(c.settings.LogLevel())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd.Context(), nil)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))

	flags := rootCmd.PersistentFlags()
	flags.StringP(settings.KeyConfig, "c", settings.DefaultConfigFile, "Config file to search for")
	flags.StringSliceP(settings.KeyTags, "t", nil, "Limit the operation to components with one of these tags")
	flags.BoolP(settings.KeyVerbose, "v", false, "Enable debug logging")
	// The flags exist, so binding cannot fail.
	_ = c.settings.BindFlags(flags)

	rootCmd.AddGroup(
		&cobra.Group{ID: groupCommands, Title: "Commands:"},
		&cobra.Group{ID: groupTargets, Title: "Project targets:"},
	)
	rootCmd.SetHelpCommandGroupID(groupCommands)
	rootCmd.SetCompletionCommandGroupID(groupCommands)

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newSetupCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute adds one subcommand per project target and runs the root command
// with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	args := c.args
	if args == nil {
		args = os.Args[1:]
	}
	c.addTargetCmds(configFileFromArgs(args))

	c.rootCmd.SetArgs(args)
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.args = args
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) run(ctx context.Context, targets []string) error {
	return c.app.Run(ctx, targets, app.RunOptions{
		ConfigFile: c.settings.ConfigFile(),
		Tags:       c.settings.Tags(),
	})
}
