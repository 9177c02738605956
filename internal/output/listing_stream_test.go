package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/temirov/codepdf/internal/output"
	"github.com/temirov/codepdf/internal/services/stream"
	"github.com/temirov/codepdf/internal/types"
)

func listingEvents() []stream.Event {
	return []stream.Event{
		{Kind: stream.EventKindStart, Start: &stream.StartEvent{Root: "/work/project", Name: "project"}},
		{Kind: stream.EventKindFile, File: &stream.FileEvent{Path: "main.go", Name: "main.go", SizeBytes: 12}},
		{Kind: stream.EventKindFolder, Folder: &stream.FolderEvent{Path: "assets", Name: "assets"}},
		{Kind: stream.EventKindFile, File: &stream.FileEvent{Path: "assets/logo.png", Name: "logo.png", Depth: 1, IsBinary: true, MimeType: "image/png", SizeBytes: 2048}},
		{Kind: stream.EventKindFile, File: &stream.FileEvent{Path: "assets/key", Name: "key", Depth: 1, ReadError: "permission denied"}},
		{Kind: stream.EventKindWarning, Message: &stream.LogEvent{Message: "skipping unreadable directory private"}},
		{Kind: stream.EventKindSummary, Summary: &stream.SummaryEvent{Folders: 1, Files: 3, Bytes: 2060}},
		{Kind: stream.EventKindDone},
	}
}

func TestRawStreamRendererPrintsOutlineAndSummary(t *testing.T) {
	var stdout, stderr bytes.Buffer
	renderer := output.NewRawStreamRenderer(&stdout, &stderr, true)
	for _, event := range listingEvents() {
		if err := renderer.Handle(event); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	if err := renderer.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	expected := strings.Join([]string{
		"/work/project",
		"    — main.go",
		"    — assets/",
		"        — logo.png [binary image/png, 2kb]",
		"        — key [unreadable: permission denied]",
		"Summary: 3 files, 1 folder, 2kb",
		"",
	}, "\n")
	if diff := cmp.Diff(expected, stdout.String()); diff != "" {
		t.Fatalf("unexpected outline (-want +got):\n%s", diff)
	}
	if stderr.String() != "skipping unreadable directory private\n" {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestJSONStreamRendererWritesOneEventPerLine(t *testing.T) {
	var stdout bytes.Buffer
	renderer := output.NewJSONStreamRenderer(&stdout)
	events := listingEvents()
	for _, event := range events {
		if err := renderer.Handle(event); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != len(events) {
		t.Fatalf("expected %d lines, got %d", len(events), len(lines))
	}
	var decoded stream.Event
	if err := json.Unmarshal([]byte(lines[3]), &decoded); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if decoded.Kind != stream.EventKindFile || decoded.File.Path != "assets/logo.png" || !decoded.File.IsBinary {
		t.Fatalf("unexpected decoded event: %+v", decoded)
	}
}

func TestFormatSummaryLine(t *testing.T) {
	line := output.FormatSummaryLine(&types.OutputSummary{TotalFiles: 1, TotalFolders: 2, TotalSize: "1kb"})
	if line != "Summary: 1 file, 2 folders, 1kb" {
		t.Fatalf("unexpected summary line %q", line)
	}
	if output.FormatSummaryLine(nil) != "Summary: 0 files, 0 folders, " {
		t.Fatalf("unexpected empty summary line %q", output.FormatSummaryLine(nil))
	}
}
