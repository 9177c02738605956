package stream

import (
	"time"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindFolder  EventKind = "folder"
	EventKindFile    EventKind = "file"
	EventKindSummary EventKind = "summary"
	EventKindWarning EventKind = "warning"
	EventKindError   EventKind = "error"
	EventKindDone    EventKind = "done"
)

type Event struct {
	Version   int       `json:"version"`
	Kind      EventKind `json:"kind"`
	Command   string    `json:"command,omitempty"`
	Path      string    `json:"path,omitempty"`
	EmittedAt time.Time `json:"emittedAt,omitempty"`

	Start   *StartEvent   `json:"start,omitempty"`
	Folder  *FolderEvent  `json:"folder,omitempty"`
	File    *FileEvent    `json:"file,omitempty"`
	Summary *SummaryEvent `json:"summary,omitempty"`
	Message *LogEvent     `json:"message,omitempty"`
	Err     *ErrorEvent   `json:"error,omitempty"`
}

// StartEvent names the traversal root. Name is the root's base name.
type StartEvent struct {
	Root string `json:"root"`
	Name string `json:"name"`
}

type FolderEvent struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// FileEvent describes one emitted file. Content and ReadErr travel in-process
// only; ReadError carries the failure text for serialized listings.
type FileEvent struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Depth     int    `json:"depth"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType,omitempty"`
	IsBinary  bool   `json:"isBinary"`
	Type      string `json:"type"`
	ReadError string `json:"readError,omitempty"`
	Content   string `json:"-"`
	ReadErr   error  `json:"-"`
}

type SummaryEvent struct {
	Folders  int   `json:"folders"`
	Files    int   `json:"files"`
	Bytes    int64 `json:"bytes"`
	Warnings int   `json:"warnings,omitempty"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}
