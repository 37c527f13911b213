package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conductor/internal/app"
)

func (c *CLI) newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Aliases: []string{"soundcheck", "clone"},
		Short:   "Clone and initialize the project",
		Long: "Clone the repository of every component that declares one and run its init commands.\n" +
			"Components whose directory already exists are not cloned again.",
		GroupID: groupCommands,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Setup(cmd.Context(), app.SetupOptions{
				ConfigFile: c.settings.ConfigFile(),
				Tags:       c.settings.Tags(),
			})
		},
	}
}
