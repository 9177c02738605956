package layout

import (
	"errors"
	"sync"
)

// ErrDocumentFinalized is returned when a finalized document is used again.
var ErrDocumentFinalized = errors.New("document already finalized")

// Document accepts blocks in order and is finalized exactly once.
type Document interface {
	AppendBlock(block BlockSpec) error
	Finalize() error
}

// Recorder is an in-memory Document that keeps every appended block.
type Recorder struct {
	mutex     sync.Mutex
	settings  Settings
	blocks    []BlockSpec
	finalized bool
}

// NewRecorder returns an empty recorder.
func NewRecorder(settings Settings) *Recorder {
	return &Recorder{settings: settings}
}

func (recorder *Recorder) AppendBlock(block BlockSpec) error {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	if recorder.finalized {
		return ErrDocumentFinalized
	}
	recorder.blocks = append(recorder.blocks, block)
	return nil
}

func (recorder *Recorder) Finalize() error {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	if recorder.finalized {
		return ErrDocumentFinalized
	}
	recorder.finalized = true
	return nil
}

// Blocks returns a copy of the recorded blocks.
func (recorder *Recorder) Blocks() []BlockSpec {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	return append([]BlockSpec(nil), recorder.blocks...)
}

// Finalized reports whether Finalize has succeeded.
func (recorder *Recorder) Finalized() bool {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	return recorder.finalized
}

// Settings returns the settings the recorder was created with.
func (recorder *Recorder) Settings() Settings {
	return recorder.settings
}
