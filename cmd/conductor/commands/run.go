package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "run [targets...]",
		Aliases: []string{"play", "start"},
		Short:   "Launch components, groups or tasks",
		Long: "Launch the named components, groups or tasks.\n" +
			"Without targets every component marked as default is launched.",
		GroupID:           groupCommands,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: c.completeTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), args)
		},
	}
}

func (c *CLI) completeTargets(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	targets, err := c.app.Targets(c.settings.ConfigFile())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []cobra.Completion
	for _, t := range targets.Tasks {
		names = append(names, cobra.CompletionWithDesc(t.QualifiedName(), taskShort(t.Description)))
	}
	for _, name := range targets.Components {
		names = append(names, cobra.CompletionWithDesc(name, "Run component"))
	}
	for _, name := range targets.Groups {
		names = append(names, cobra.CompletionWithDesc(name, "Run group"))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
