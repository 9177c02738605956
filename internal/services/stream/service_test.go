package stream_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/temirov/codepdf/internal/ignore"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
)

func TestStreamTreeEmitsEventsWithSummary(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "example.txt"), []byte("tree"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "skip.log"), []byte("log"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	events := collectEvents(t, func(ch chan<- stream.Event) error {
		options := stream.TreeOptions{Root: root, Rules: ignore.CompileText("*.log")}
		return stream.StreamTree(context.Background(), options, ch)
	})

	var kinds []stream.EventKind
	for _, event := range events {
		kinds = append(kinds, event.Kind)
		if event.Version != stream.SchemaVersion || event.Command != types.CommandList {
			t.Fatalf("unexpected envelope: %+v", event)
		}
	}
	expectedKinds := []stream.EventKind{
		stream.EventKindStart,
		stream.EventKindFolder,
		stream.EventKindFile,
		stream.EventKindSummary,
		stream.EventKindDone,
	}
	if diff := cmp.Diff(expectedKinds, kinds); diff != "" {
		t.Fatalf("unexpected event kinds (-want +got):\n%s", diff)
	}

	if events[0].Start.Name != filepath.Base(root) {
		t.Fatalf("unexpected start name %q", events[0].Start.Name)
	}
	fileEvent := events[2].File
	if fileEvent.Path != "nested/example.txt" || fileEvent.Depth != 1 || fileEvent.Content != "tree" || fileEvent.Type != types.NodeTypeFile {
		t.Fatalf("unexpected file event: %+v", fileEvent)
	}
	summary := events[3].Summary
	if summary.Files != 1 || summary.Folders != 1 || summary.Bytes != int64(len("tree")) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestStreamTreePublishesErrorEventForMissingRoot(t *testing.T) {
	missingRoot := filepath.Join(t.TempDir(), "missing")
	events := make(chan stream.Event, 8)
	err := stream.StreamTree(context.Background(), stream.TreeOptions{Root: missingRoot}, events)
	close(events)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	var kinds []stream.EventKind
	for event := range events {
		kinds = append(kinds, event.Kind)
	}
	if diff := cmp.Diff([]stream.EventKind{stream.EventKindStart, stream.EventKindError}, kinds); diff != "" {
		t.Fatalf("unexpected event kinds (-want +got):\n%s", diff)
	}
}

func TestStreamTreeWarningCarriesOffendingPath(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatalf("mkdir src: %v", err)
	}
	if err := os.Symlink("missing-target", filepath.Join(root, "src", "dangling")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	events := collectEvents(t, func(ch chan<- stream.Event) error {
		return stream.StreamTree(context.Background(), stream.TreeOptions{Root: root}, ch)
	})

	var warningPaths []string
	for _, event := range events {
		if event.Kind == stream.EventKindWarning {
			warningPaths = append(warningPaths, event.Path)
		}
	}
	if diff := cmp.Diff([]string{"src/dangling"}, warningPaths); diff != "" {
		t.Fatalf("unexpected warning paths (-want +got):\n%s", diff)
	}
}

func TestStreamTreeRejectsEmptyRoot(t *testing.T) {
	if err := stream.StreamTree(context.Background(), stream.TreeOptions{}, make(chan stream.Event, 1)); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func collectEvents(t *testing.T, producer func(chan<- stream.Event) error) []stream.Event {
	t.Helper()
	events := make(chan stream.Event, 32)
	errCh := make(chan error, 1)
	go func() {
		errCh <- producer(events)
		close(events)
	}()

	var out []stream.Event
	for event := range events {
		out = append(out, event)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("producer returned error: %v", err)
	}
	return out
}
