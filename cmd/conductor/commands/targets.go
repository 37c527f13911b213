package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/conductor/internal/settings"
)

const (
	groupCommands = "commands"
	groupTargets  = "targets"
)

// addTargetCmds registers a subcommand for every component, group and task
// of the project found for configFile. Names taken by built-in commands or
// by an earlier target are skipped. Without a config nothing is added.
func (c *CLI) addTargetCmds(configFile string) {
	targets, err := c.app.Targets(configFile)
	if err != nil {
		return
	}

	taken := make(map[string]struct{})
	for _, cmd := range c.rootCmd.Commands() {
		taken[strings.ToLower(cmd.Name())] = struct{}{}
		for _, alias := range cmd.Aliases {
			taken[strings.ToLower(alias)] = struct{}{}
		}
	}
	taken["help"] = struct{}{}
	taken["completion"] = struct{}{}

	add := func(name, short string) {
		key := strings.ToLower(name)
		if _, ok := taken[key]; ok || name == "" {
			return
		}
		taken[key] = struct{}{}
		c.rootCmd.AddCommand(c.newTargetCmd(name, short))
	}

	for _, name := range targets.Components {
		add(name, "Run component")
	}
	for _, name := range targets.Groups {
		add(name, "Run group")
	}
	for _, t := range targets.Tasks {
		add(t.QualifiedName(), taskShort(t.Description))
	}
}

func (c *CLI) newTargetCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:     name,
		Short:   short,
		GroupID: groupTargets,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd.Context(), []string{name})
		},
	}
}

func taskShort(description string) string {
	if description == "" {
		return "Run task"
	}
	return description
}

// configFileFromArgs finds the config file before cobra parses the command
// line, since the subcommands themselves depend on it.
func configFileFromArgs(args []string) string {
	fs := pflag.NewFlagSet("conductor", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	config := fs.StringP(settings.KeyConfig, "c", "", "")
	_ = fs.Parse(args)

	if *config != "" {
		return *config
	}
	return settings.New().ConfigFile()
}
