package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/temirov/codepdf/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationHeader = "# codepdf configuration. Command-line flags override these values.\n"
)

// Default values shared by the init template and the command-line flags.
const (
	DefaultOutputPath   = "codebase.pdf"
	DefaultFontSize     = 10
	DefaultPageSize     = "A4"
	DefaultMarginInches = 1.0
	DefaultAuthor       = "Author"
	DefaultWorkerCount  = 4
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	HomeDirectory    string
}

// DefaultApplicationConfiguration returns the configuration written by init.
func DefaultApplicationConfiguration() ApplicationConfiguration {
	fontSize := DefaultFontSize
	margin := DefaultMarginInches
	workers := DefaultWorkerCount
	useGitignore := true
	return ApplicationConfiguration{
		Output:   DefaultOutputPath,
		FontSize: &fontSize,
		PageSize: DefaultPageSize,
		Margin:   &margin,
		Author:   DefaultAuthor,
		Workers:  &workers,
		Paths: PathConfiguration{
			Exclude:      []string{},
			UseGitignore: &useGitignore,
		},
	}
}

// InitializeConfiguration writes the default configuration to the requested target.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, utils.ConfigFileName)
	case InitTargetGlobal:
		homeDirectory := options.HomeDirectory
		if homeDirectory == "" {
			resolvedHome, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory for configuration: %w", err)
			}
			homeDirectory = resolvedHome
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.GlobalConfigFileName)
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	encoded, marshalErr := yaml.Marshal(DefaultApplicationConfiguration())
	if marshalErr != nil {
		return "", fmt.Errorf("encode default configuration: %w", marshalErr)
	}
	if err := os.WriteFile(destinationPath, append([]byte(configurationHeader), encoded...), 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
