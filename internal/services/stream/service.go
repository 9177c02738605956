package stream

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/temirov/codepdf/internal/commands"
	"github.com/temirov/codepdf/internal/ignore"
	"github.com/temirov/codepdf/internal/types"
)

type TreeOptions struct {
	Root    string
	Rules   *ignore.RuleSet
	Workers int
	Command string
}

type emitter struct {
	ctx     context.Context
	out     chan<- Event
	command string
}

func newEmitter(ctx context.Context, out chan<- Event, command string) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out, command: command}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.Command == "" {
		event.Command = e.command
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(path, message string) {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return
	}
	_ = e.send(Event{
		Kind:    EventKindWarning,
		Path:    path,
		Message: &LogEvent{Level: "warning", Message: trimmed},
	})
}

// StreamTree walks opts.Root and publishes start, folder, file, warning,
// summary and done events on out in walk order. A walk failure is published
// as an error event and returned; no summary or done event follows it.
func StreamTree(ctx context.Context, opts TreeOptions, out chan<- Event) error {
	if opts.Root == "" {
		return fmt.Errorf("stream: tree root path is empty")
	}
	command := opts.Command
	if command == "" {
		command = types.CommandList
	}

	emitter := newEmitter(ctx, out, command)
	absoluteRoot, absoluteError := filepath.Abs(opts.Root)
	if absoluteError != nil {
		absoluteRoot = opts.Root
	}
	if err := emitter.send(Event{
		Kind:  EventKindStart,
		Path:  opts.Root,
		Start: &StartEvent{Root: absoluteRoot, Name: filepath.Base(absoluteRoot)},
	}); err != nil {
		return err
	}

	streamOptions := commands.TreeStreamOptions{
		Root:    opts.Root,
		Rules:   opts.Rules,
		Workers: opts.Workers,
		Warn: func(path string, message string) {
			emitter.warn(path, message)
		},
	}

	handler := func(evt commands.TreeEvent) error {
		switch evt.Kind {
		case commands.TreeEventFolder:
			folder := evt.Folder
			return emitter.send(Event{
				Kind:   EventKindFolder,
				Path:   folder.Path,
				Folder: &FolderEvent{Path: folder.Path, Name: folder.Name, Depth: folder.Depth},
			})
		case commands.TreeEventFile:
			return emitter.send(Event{Kind: EventKindFile, Path: evt.File.Path, File: fileEventFromNode(evt.File)})
		default:
			return nil
		}
	}

	summary, walkError := commands.StreamTree(ctx, streamOptions, handler)
	if walkError != nil {
		_ = emitter.send(Event{Kind: EventKindError, Path: opts.Root, Err: &ErrorEvent{Message: walkError.Error()}})
		return walkError
	}

	if err := emitter.send(Event{
		Kind: EventKindSummary,
		Path: opts.Root,
		Summary: &SummaryEvent{
			Folders:  summary.Folders,
			Files:    summary.Files,
			Bytes:    summary.Bytes,
			Warnings: summary.Warnings,
		},
	}); err != nil {
		return err
	}
	return emitter.send(Event{Kind: EventKindDone, Path: opts.Root})
}

func fileEventFromNode(node *commands.FileNode) *FileEvent {
	nodeType := types.NodeTypeFile
	if node.IsBinary {
		nodeType = types.NodeTypeBinary
	}
	fileEvent := &FileEvent{
		Path:      node.Path,
		Name:      node.Name,
		Depth:     node.Depth,
		SizeBytes: node.SizeBytes,
		MimeType:  node.MimeType,
		IsBinary:  node.IsBinary,
		Type:      nodeType,
		Content:   node.Content,
		ReadErr:   node.ReadErr,
	}
	if node.ReadErr != nil {
		fileEvent.ReadError = node.ReadErr.Error()
	}
	return fileEvent
}
