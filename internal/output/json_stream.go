package output

import (
	"encoding/json"
	"io"

	"github.com/temirov/codepdf/internal/services/stream"
)

type jsonStreamRenderer struct {
	encoder *json.Encoder
}

// NewJSONStreamRenderer writes every event as one JSON object per line.
func NewJSONStreamRenderer(stdout io.Writer) StreamRenderer {
	return &jsonStreamRenderer{encoder: json.NewEncoder(stdout)}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	return renderer.encoder.Encode(event)
}

func (renderer *jsonStreamRenderer) Flush() error {
	return nil
}
