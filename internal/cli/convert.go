package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/temirov/codepdf/internal/config"
	"github.com/temirov/codepdf/internal/layout"
	"github.com/temirov/codepdf/internal/output"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	convertUse              = "convert <root_dir>"
	convertShortDescription = "render a directory tree into a PDF"
	convertLongDescription  = `Walk root_dir, skip everything matched by .gitignore, --exclude patterns and
the built-in rules (.git/, .gitignore, __pycache__/, *.pyc, *.pdf), and render
every remaining folder and file into a single PDF.`

	outputFlagName          = "output"
	outputFlagShorthand     = "o"
	outputFlagDescription   = "output PDF file"
	fontSizeFlagName        = "font-size"
	fontSizeFlagShorthand   = "f"
	fontSizeFlagDescription = "font size in points"
	pageSizeFlagName        = "page-size"
	pageSizeFlagShorthand   = "p"
	pageSizeFlagDescription = "page size (A4, LETTER or LEGAL)"
	marginFlagName          = "margin"
	marginFlagShorthand     = "m"
	marginFlagDescription   = "page margin in inches"
	authorFlagName          = "author"
	authorFlagShorthand     = "a"
	authorFlagDescription   = "author shown in the document header"

	conversionSuccessFormat     = "PDF generated successfully: %s\n"
	conversionInterruptedFormat = "conversion interrupted: %w"
	conversionSummaryMessage    = "conversion finished"
	conversionStartedMessage    = "starting conversion"
	createOutputErrorFormat     = "create output %s: %w"
)

// convertOptions holds convert flag values.
type convertOptions struct {
	outputPath string
	fontSize   int
	pageSize   string
	margin     float64
	author     string
	paths      pathOptions
}

// convertRequest is a fully resolved conversion.
type convertRequest struct {
	root       types.ValidatedPath
	outputPath string
	settings   layout.Settings
	rules      config.RuleOptions
	workers    int
}

func createConvertCommand(logger *zap.Logger, shared *sharedOptions) *cobra.Command {
	options := &convertOptions{}
	command := &cobra.Command{
		Use:   convertUse,
		Short: convertShortDescription,
		Long:  convertLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			configuration, configurationError := loadConfiguration(shared)
			if configurationError != nil {
				return configurationError
			}
			request, requestError := resolveConvertRequest(command, arguments[0], *options, configuration)
			if requestError != nil {
				return requestError
			}
			return runConvert(command.Context(), command, logger, request)
		},
	}
	command.Flags().StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, config.DefaultOutputPath, outputFlagDescription)
	command.Flags().IntVarP(&options.fontSize, fontSizeFlagName, fontSizeFlagShorthand, config.DefaultFontSize, fontSizeFlagDescription)
	command.Flags().StringVarP(&options.pageSize, pageSizeFlagName, pageSizeFlagShorthand, config.DefaultPageSize, pageSizeFlagDescription)
	command.Flags().Float64VarP(&options.margin, marginFlagName, marginFlagShorthand, config.DefaultMarginInches, marginFlagDescription)
	command.Flags().StringVarP(&options.author, authorFlagName, authorFlagShorthand, config.DefaultAuthor, authorFlagDescription)
	addPathFlags(command, &options.paths)
	return command
}

// resolveConvertRequest applies flag, configuration and default precedence
// and validates the result before anything is written.
func resolveConvertRequest(command *cobra.Command, rootArgument string, options convertOptions, configuration config.ApplicationConfiguration) (convertRequest, error) {
	flags := command.Flags()
	outputPath := options.outputPath
	if !flags.Changed(outputFlagName) && configuration.Output != "" {
		outputPath = configuration.Output
	}
	fontSize := options.fontSize
	if !flags.Changed(fontSizeFlagName) && configuration.FontSize != nil {
		fontSize = *configuration.FontSize
	}
	pageSizeName := options.pageSize
	if !flags.Changed(pageSizeFlagName) && configuration.PageSize != "" {
		pageSizeName = configuration.PageSize
	}
	margin := options.margin
	if !flags.Changed(marginFlagName) && configuration.Margin != nil {
		margin = *configuration.Margin
	}
	author := options.author
	if !flags.Changed(authorFlagName) && configuration.Author != "" {
		author = configuration.Author
	}

	root, rootError := resolveRoot(rootArgument)
	if rootError != nil {
		return convertRequest{}, rootError
	}
	pageSize, pageSizeError := layout.ParsePageSize(pageSizeName)
	if pageSizeError != nil {
		return convertRequest{}, &ConfigError{Setting: pageSizeFlagName, Value: pageSizeName, Err: pageSizeError}
	}
	if fontSize <= 0 {
		return convertRequest{}, &ConfigError{Setting: fontSizeFlagName, Value: strconv.Itoa(fontSize), Err: ErrInvalidValue}
	}
	if margin < 0 {
		return convertRequest{}, &ConfigError{Setting: marginFlagName, Value: strconv.FormatFloat(margin, 'g', -1, 64), Err: ErrInvalidValue}
	}
	absoluteOutput, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		return convertRequest{}, &ConfigError{Setting: outputFlagName, Value: outputPath, Err: absoluteError}
	}

	settings := layout.Settings{
		PageSize:  pageSize,
		Margins:   layout.UniformMargins(margin),
		FontSize:  float64(fontSize),
		Author:    author,
		Title:     filepath.Base(root.AbsolutePath),
		CreatedAt: time.Now(),
	}
	if validationError := settings.Validate(); validationError != nil {
		return convertRequest{}, &ConfigError{Setting: marginFlagName, Value: strconv.FormatFloat(margin, 'g', -1, 64), Err: validationError}
	}

	ruleOptions, workers, pathError := resolvedPathOptions(command, options.paths, configuration)
	if pathError != nil {
		return convertRequest{}, pathError
	}
	if pattern, inside := selfExclusionPattern(root.AbsolutePath, absoluteOutput); inside {
		ruleOptions.ExcludePatterns = append(ruleOptions.ExcludePatterns, pattern)
	}

	return convertRequest{
		root:       root,
		outputPath: absoluteOutput,
		settings:   settings,
		rules:      ruleOptions,
		workers:    workers,
	}, nil
}

// runConvert streams the tree into a PDF document. The document is finalized
// even when ctx is cancelled part way through.
func runConvert(ctx context.Context, command *cobra.Command, logger *zap.Logger, request convertRequest) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ruleSet, rulesError := config.LoadRules(request.root.AbsolutePath, request.rules)
	if rulesError != nil {
		return fmt.Errorf(loadRulesErrorFormat, rulesError)
	}

	document, documentError := layout.CreatePDFFile(request.outputPath, request.settings)
	if documentError != nil {
		return fmt.Errorf(createOutputErrorFormat, request.outputPath, documentError)
	}
	logger.Info(conversionStartedMessage,
		zap.String("root", request.root.AbsolutePath),
		zap.String("output", request.outputPath),
		zap.Stringer("page_size", request.settings.PageSize),
		zap.Float64("font_size", request.settings.FontSize),
		zap.Int("rules", ruleSet.Len()),
	)

	renderer := output.NewDocumentRenderer(document, output.DocumentOptions{
		Author:    request.settings.Author,
		CreatedAt: request.settings.CreatedAt,
		Logger:    logger,
	})
	var summary *stream.SummaryEvent
	streamError := dispatchStream(
		ctx,
		func(streamCtx context.Context, events chan<- stream.Event) error {
			return stream.StreamTree(streamCtx, stream.TreeOptions{
				Root:    request.root.AbsolutePath,
				Rules:   ruleSet,
				Workers: request.workers,
				Command: types.CommandConvert,
			}, events)
		},
		func(event stream.Event) error {
			if event.Kind == stream.EventKindSummary {
				summary = event.Summary
			}
			return renderer.Handle(event)
		},
	)
	err = multierr.Append(streamError, renderer.Flush())
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf(conversionInterruptedFormat, ctx.Err())
	}

	if summary != nil {
		logger.Info(conversionSummaryMessage,
			zap.Int("folders", summary.Folders),
			zap.Int("files", summary.Files),
			zap.Int64("bytes", summary.Bytes),
			zap.Int("warnings", summary.Warnings),
			zap.Int("pages", document.PageCount()),
		)
	}
	_, err = fmt.Fprintf(command.OutOrStdout(), conversionSuccessFormat, request.outputPath)
	return err
}
