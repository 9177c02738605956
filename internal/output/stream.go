package output

import (
	"github.com/temirov/codepdf/internal/services/stream"
)

// StreamRenderer consumes events in arrival order. Flush is called once
// after the last event, including after a failed or cancelled walk.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}
