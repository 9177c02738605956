package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/temirov/codepdf/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default settings to ./.codepdf.yaml, or to ~/.codepdf/config.yaml
with --global. Existing files are kept unless --force is set.`

	globalFlagName        = "global"
	globalFlagDescription = "write the global configuration instead of the local one"
	forceFlagName         = "force"
	forceFlagDescription  = "overwrite an existing configuration file"

	initSuccessFormat = "Configuration written to %s\n"
)

type initOptions struct {
	global bool
	force  bool
}

func createInitCommand() *cobra.Command {
	options := &initOptions{}
	command := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if options.global {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  options.force,
			})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, destinationPath)
			return writeError
		},
	}
	registerBooleanFlag(command.Flags(), &options.global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(command.Flags(), &options.force, forceFlagName, false, forceFlagDescription)
	return command
}
