package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/codepdf/internal/ignore"
	"github.com/temirov/codepdf/internal/utils"
	"golang.org/x/sync/errgroup"
)

// ErrRootNotDirectory is returned when the traversal root is not a directory.
var ErrRootNotDirectory = errors.New("root is not a directory")

type TreeEventKind int

const (
	TreeEventFolder TreeEventKind = iota
	TreeEventFile
)

// FolderNode describes a visited directory other than the root.
type FolderNode struct {
	Path         string
	Name         string
	Depth        int
	AbsolutePath string
}

// FileNode describes an emitted file. ReadErr is set instead of Content
// when the file could not be read.
type FileNode struct {
	Path         string
	Name         string
	Depth        int
	AbsolutePath string
	SizeBytes    int64
	MimeType     string
	IsBinary     bool
	Content      string
	ReadErr      error
}

// TreeEvent carries exactly one of Folder or File, selected by Kind.
type TreeEvent struct {
	Kind   TreeEventKind
	Folder *FolderNode
	File   *FileNode
}

// TreeSummary aggregates what a walk emitted.
type TreeSummary struct {
	Folders    int
	Files      int
	Bytes      int64
	ReadErrors int
	Warnings   int
}

type TreeStreamOptions struct {
	Root    string
	Rules   *ignore.RuleSet
	Workers int
	// Warn receives the relative path of the skipped entry and a message.
	Warn func(path string, message string)
}

type treeStreamContext struct {
	options TreeStreamOptions
	handler func(TreeEvent) error
	summary TreeSummary
	// activeDirectories holds the real paths of directories on the current walk path.
	activeDirectories map[string]struct{}
	// visitedDirectories holds the real path of every directory descended so far.
	visitedDirectories map[string]struct{}
}

type directoryEntry struct {
	name         string
	relativePath string
	absolutePath string
	info         fs.FileInfo
}

// StreamTree walks root depth-first and calls handler for every kept folder
// and file. Within a directory, entries are visited in byte-wise name order
// and all files are emitted before any subdirectory is entered. Ignored
// directories are never descended. The walk stops with ctx.Err() when ctx is
// cancelled; events already handled stay handled.
func StreamTree(ctx context.Context, options TreeStreamOptions, handler func(TreeEvent) error) (TreeSummary, error) {
	if handler == nil {
		return TreeSummary{}, errors.New(errorNilHandler)
	}

	walker := treeStreamContext{
		options:           options,
		handler:           handler,
		activeDirectories:  make(map[string]struct{}),
		visitedDirectories: make(map[string]struct{}),
	}
	if walker.options.Warn == nil {
		walker.options.Warn = func(string, string) {}
	}
	if walker.options.Workers <= 0 {
		walker.options.Workers = defaultWorkerCount
	}

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return TreeSummary{}, fmt.Errorf(errorRootStatFormat, options.Root, absoluteError)
	}
	info, statErr := os.Stat(absoluteRoot)
	if statErr != nil {
		return TreeSummary{}, fmt.Errorf(errorRootStatFormat, options.Root, statErr)
	}
	if !info.IsDir() {
		return TreeSummary{}, fmt.Errorf("%w: %s", ErrRootNotDirectory, options.Root)
	}

	walkError := walker.walkDirectory(ctx, absoluteRoot, relativeRootPath)
	return walker.summary, walkError
}

func (walker *treeStreamContext) warn(path string, format string, arguments ...any) {
	walker.summary.Warnings++
	walker.options.Warn(path, fmt.Sprintf(format, arguments...))
}

func (walker *treeStreamContext) walkDirectory(ctx context.Context, absolutePath string, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	realPath, realPathError := filepath.EvalSymlinks(absolutePath)
	if realPathError != nil {
		realPath = absolutePath
	}
	if _, active := walker.activeDirectories[realPath]; active {
		walker.warn(relativePath, WarningSymlinkCycleFormat, relativePath)
		return nil
	}
	if _, visited := walker.visitedDirectories[realPath]; visited {
		walker.warn(relativePath, WarningDuplicateDirectoryFormat, relativePath)
		return nil
	}
	walker.visitedDirectories[realPath] = struct{}{}
	walker.activeDirectories[realPath] = struct{}{}
	defer delete(walker.activeDirectories, realPath)

	entries, readErr := os.ReadDir(absolutePath)
	if readErr != nil {
		walker.warn(relativePath, WarningDirectoryReadFormat, relativePath, readErr)
		return nil
	}

	var files []directoryEntry
	var directories []directoryEntry
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		child := directoryEntry{
			name:         entry.Name(),
			relativePath: joinRelative(relativePath, entry.Name()),
			absolutePath: filepath.Join(absolutePath, entry.Name()),
		}
		info, statErr := os.Stat(child.absolutePath)
		if statErr != nil {
			walker.warn(child.relativePath, WarningBrokenLinkFormat, child.relativePath, statErr)
			continue
		}
		child.info = info

		candidate := ignore.PathCandidate{Path: child.relativePath, IsDirectory: info.IsDir()}
		if walker.options.Rules.IsIgnored(candidate) {
			continue
		}
		if info.IsDir() {
			directories = append(directories, child)
			continue
		}
		files = append(files, child)
	}

	if relativePath != relativeRootPath {
		folder := FolderNode{
			Path:         relativePath,
			Name:         filepath.Base(absolutePath),
			Depth:        utils.PathDepth(relativePath),
			AbsolutePath: absolutePath,
		}
		if err := walker.handler(TreeEvent{Kind: TreeEventFolder, Folder: &folder}); err != nil {
			return err
		}
		walker.summary.Folders++
	}

	if err := walker.emitFiles(ctx, files); err != nil {
		return err
	}

	for _, directory := range directories {
		if err := walker.walkDirectory(ctx, directory.absolutePath, directory.relativePath); err != nil {
			return err
		}
	}
	return nil
}

// emitFiles reads files in bounded parallel batches and emits them in input order.
func (walker *treeStreamContext) emitFiles(ctx context.Context, files []directoryEntry) error {
	batchSize := walker.options.Workers * readBatchSizeFactor
	for batchStart := 0; batchStart < len(files); batchStart += batchSize {
		batchEnd := min(batchStart+batchSize, len(files))
		batch := files[batchStart:batchEnd]
		nodes := make([]FileNode, len(batch))

		group, groupContext := errgroup.WithContext(ctx)
		group.SetLimit(walker.options.Workers)
		for index := range batch {
			group.Go(func() error {
				if err := groupContext.Err(); err != nil {
					return err
				}
				nodes[index] = inspectFile(batch[index])
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}

		for index := range nodes {
			if err := ctx.Err(); err != nil {
				return err
			}
			node := nodes[index]
			if node.ReadErr != nil {
				walker.summary.ReadErrors++
				walker.warn(node.Path, WarningFileReadFormat, node.Path, node.ReadErr)
			}
			if err := walker.handler(TreeEvent{Kind: TreeEventFile, File: &node}); err != nil {
				return err
			}
			walker.summary.Files++
			walker.summary.Bytes += node.SizeBytes
		}
	}
	return nil
}

func joinRelative(parent string, name string) string {
	if parent == relativeRootPath {
		return name
	}
	return parent + relativePathSeparator + name
}
