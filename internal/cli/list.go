package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/temirov/codepdf/internal/config"
	"github.com/temirov/codepdf/internal/output"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	listUse              = "list <root_dir>"
	listShortDescription = "show which folders and files would be rendered"
	listLongDescription  = `Walk root_dir with the same rules as convert and print the kept folders and
files without producing a PDF. Use --format json for one event per line.`

	formatFlagName         = "format"
	formatFlagDescription  = "output format (raw or json)"
	summaryFlagName        = "summary"
	summaryFlagDescription = "print a summary line after the listing"
)

// listOptions holds list flag values.
type listOptions struct {
	format         string
	includeSummary bool
	paths          pathOptions
}

func createListCommand(logger *zap.Logger, shared *sharedOptions) *cobra.Command {
	options := &listOptions{}
	command := &cobra.Command{
		Use:   listUse,
		Short: listShortDescription,
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := loadConfiguration(shared)
			if configurationError != nil {
				return configurationError
			}
			return runList(command.Context(), command, logger, arguments[0], *options, configuration)
		},
	}
	command.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(command.Flags(), &options.includeSummary, summaryFlagName, false, summaryFlagDescription)
	addPathFlags(command, &options.paths)
	return command
}

func runList(ctx context.Context, command *cobra.Command, logger *zap.Logger, rootArgument string, options listOptions, configuration config.ApplicationConfiguration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format := strings.ToLower(strings.TrimSpace(options.format))
	var renderer output.StreamRenderer
	switch format {
	case types.FormatRaw:
		renderer = output.NewRawStreamRenderer(command.OutOrStdout(), command.ErrOrStderr(), options.includeSummary)
	case types.FormatJSON:
		renderer = output.NewJSONStreamRenderer(command.OutOrStdout())
	default:
		return &ConfigError{Setting: formatFlagName, Value: options.format, Err: ErrInvalidValue}
	}

	root, rootError := resolveRoot(rootArgument)
	if rootError != nil {
		return rootError
	}
	ruleOptions, workers, pathError := resolvedPathOptions(command, options.paths, configuration)
	if pathError != nil {
		return pathError
	}
	ruleSet, rulesError := config.LoadRules(root.AbsolutePath, ruleOptions)
	if rulesError != nil {
		return fmt.Errorf(loadRulesErrorFormat, rulesError)
	}
	logger.Debug("listing started", zap.String("root", root.AbsolutePath), zap.Int("rules", ruleSet.Len()))

	streamError := dispatchStream(
		ctx,
		func(streamCtx context.Context, events chan<- stream.Event) error {
			return stream.StreamTree(streamCtx, stream.TreeOptions{
				Root:    root.AbsolutePath,
				Rules:   ruleSet,
				Workers: workers,
				Command: types.CommandList,
			}, events)
		},
		renderer.Handle,
	)
	return multierr.Append(streamError, renderer.Flush())
}
