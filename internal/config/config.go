// Package config loads ignore rules and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/codepdf/internal/ignore"
	"github.com/temirov/codepdf/internal/utils"
	"go.uber.org/multierr"
)

// builtinPatterns are appended after every user-supplied rule.
var builtinPatterns = []string{
	utils.GitDirectoryName + "/",
	utils.GitIgnoreFileName,
	utils.PythonCacheDirectoryName + "/",
	"*.pyc",
	"*" + utils.OutputFileExtension,
}

// BuiltinPatterns returns the rules that always apply, in evaluation order.
func BuiltinPatterns() []string {
	return append([]string(nil), builtinPatterns...)
}

const (
	initialScanBufferBytes = 64 * 1024
	// maximumIgnoreLineBytes bounds a single ignore-file line.
	maximumIgnoreLineBytes = 64 * 1024 * 1024
)

// RuleOptions selects the rule sources combined by LoadRules.
type RuleOptions struct {
	UseGitignore    bool
	ExcludePatterns []string
}

// LoadIgnoreFilePatterns reads an ignore file and returns its lines unmodified.
// A missing file yields no lines and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) (lines []string, err error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		err = multierr.Append(err, fileHandle.Close())
	}()

	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialScanBufferBytes), maximumIgnoreLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return lines, nil
}

// LoadRules compiles the rule set for a traversal root: the root .gitignore
// (when enabled), then exclusion patterns, then the built-ins.
func LoadRules(absoluteDirectoryPath string, options RuleOptions) (*ignore.RuleSet, error) {
	var combinedLines []string

	if options.UseGitignore {
		gitIgnoreFilePath := filepath.Join(absoluteDirectoryPath, utils.GitIgnoreFileName)
		gitIgnoreLines, loadError := LoadIgnoreFilePatterns(gitIgnoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedLines = append(combinedLines, gitIgnoreLines...)
	}

	var exclusionLines []string
	for _, pattern := range options.ExcludePatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		exclusionLines = append(exclusionLines, trimmedPattern)
	}
	combinedLines = append(combinedLines, utils.DeduplicatePatterns(exclusionLines)...)

	return ignore.Compile(combinedLines, builtinPatterns), nil
}
