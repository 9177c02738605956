// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/temirov/codepdf/internal/config"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
	"github.com/temirov/codepdf/internal/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const (
	rootUse              = utils.ApplicationName
	rootShortDescription = "render a codebase into a single PDF"
	rootLongDescription  = `codepdf walks a directory tree and renders every file that is not excluded
by .gitignore rules into one paginated PDF document.
Use "convert" to produce the PDF, "list" to preview which files would be included,
and "init" to write a configuration file.`

	verboseFlagName        = "verbose"
	verboseFlagDescription = "enable debug logging"
	configFlagName         = "config"
	configFlagDescription  = "path to a configuration file (default ./" + utils.ConfigFileName + ")"

	exclusionFlagName               = "exclude"
	exclusionFlagShorthand          = "e"
	exclusionFlagDescription        = "exclude path pattern (gitignore syntax, repeatable)"
	noGitignoreFlagName             = "no-gitignore"
	disableGitignoreFlagDescription = "do not read the root .gitignore"
	workersFlagName                 = "workers"
	workersFlagDescription          = "number of files read in parallel"

	rootArgumentSetting         = "root directory"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorStatFormat             = "stat failed for '%s': %w"
	loadConfigurationErrorLabel = "configuration"
	loadRulesErrorFormat        = "load ignore rules: %w"
)

// Execute runs the codepdf application. Cancelling ctx stops a running
// conversion; the partial document is still finalized.
func Execute(ctx context.Context, logger *zap.Logger, logLevel zap.AtomicLevel) error {
	rootCommand := createRootCommand(logger, logLevel)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return fang.Execute(
		ctx,
		rootCommand,
		fang.WithVersion(utils.GetApplicationVersion()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

// sharedOptions holds persistent flags available to every subcommand.
type sharedOptions struct {
	verbose    bool
	configPath string
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger, logLevel zap.AtomicLevel) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	shared := &sharedOptions{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if shared.verbose {
				logLevel.SetLevel(zapcore.DebugLevel)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&shared.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.PersistentFlags().StringVar(&shared.configPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createConvertCommand(logger, shared),
		createListCommand(logger, shared),
		createInitCommand(),
	)
	return rootCommand
}

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	workers           int
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(command.Flags(), &options.disableGitignore, noGitignoreFlagName, false, disableGitignoreFlagDescription)
	command.Flags().IntVar(&options.workers, workersFlagName, config.DefaultWorkerCount, workersFlagDescription)
}

// resolvedPathOptions merges path flags over the loaded configuration.
func resolvedPathOptions(command *cobra.Command, options pathOptions, configuration config.ApplicationConfiguration) (config.RuleOptions, int, error) {
	useGitignore := true
	if configuration.Paths.UseGitignore != nil {
		useGitignore = *configuration.Paths.UseGitignore
	}
	if command.Flags().Changed(noGitignoreFlagName) {
		useGitignore = !options.disableGitignore
	}

	excludePatterns := append([]string{}, configuration.Paths.Exclude...)
	excludePatterns = append(excludePatterns, options.exclusionPatterns...)

	workers := options.workers
	if !command.Flags().Changed(workersFlagName) && configuration.Workers != nil {
		workers = *configuration.Workers
	}
	if workers < 1 {
		return config.RuleOptions{}, 0, &ConfigError{Setting: workersFlagName, Value: fmt.Sprint(workers), Err: ErrInvalidValue}
	}
	return config.RuleOptions{UseGitignore: useGitignore, ExcludePatterns: excludePatterns}, workers, nil
}

func loadConfiguration(shared *sharedOptions) (config.ApplicationConfiguration, error) {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: shared.configPath})
	if loadError != nil {
		return config.ApplicationConfiguration{}, &ConfigError{Setting: loadConfigurationErrorLabel, Value: shared.configPath, Err: loadError}
	}
	return configuration, nil
}

// resolveRoot converts the root argument to an absolute directory path.
func resolveRoot(inputPath string) (types.ValidatedPath, error) {
	absolutePath, absolutePathError := filepath.Abs(inputPath)
	if absolutePathError != nil {
		return types.ValidatedPath{}, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
	}
	cleanPath := filepath.Clean(absolutePath)
	info, fileStatusError := os.Stat(cleanPath)
	if fileStatusError != nil {
		if os.IsNotExist(fileStatusError) {
			return types.ValidatedPath{}, &ConfigError{Setting: rootArgumentSetting, Value: inputPath, Err: ErrRootMissing}
		}
		return types.ValidatedPath{}, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
	}
	if !info.IsDir() {
		return types.ValidatedPath{}, &ConfigError{Setting: rootArgumentSetting, Value: inputPath, Err: ErrRootNotDirectory}
	}
	return types.ValidatedPath{AbsolutePath: cleanPath, IsDir: true}, nil
}

// dispatchStream runs produce and consume concurrently over an unbuffered
// channel. Only the consumer goroutine touches renderer state.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// globEscaper escapes characters with special meaning in ignore patterns.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`)

// selfExclusionPattern returns an anchored pattern matching outputPath when
// it lies inside root, so a document never includes itself.
func selfExclusionPattern(root string, outputPath string) (string, bool) {
	relativePath := utils.RelativePathOrSelf(outputPath, root)
	if relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, "../") || filepath.IsAbs(relativePath) {
		return "", false
	}
	return "/" + globEscaper.Replace(relativePath), true
}
