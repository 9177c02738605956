package commands

import (
	"os"

	"github.com/temirov/codepdf/internal/utils"
)

// ReadError reports a file that was kept by the rules but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (readError *ReadError) Error() string {
	return readError.Err.Error()
}

func (readError *ReadError) Unwrap() error {
	return readError.Err
}

// inspectFile reads one file and classifies its content. Read failures are
// carried on the node rather than returned.
func inspectFile(entry directoryEntry) FileNode {
	node := FileNode{
		Path:         entry.relativePath,
		Name:         entry.name,
		Depth:        utils.PathDepth(entry.relativePath),
		AbsolutePath: entry.absolutePath,
		SizeBytes:    entry.info.Size(),
	}

	data, readErr := os.ReadFile(entry.absolutePath)
	if readErr != nil {
		node.ReadErr = &ReadError{Path: entry.relativePath, Err: readErr}
		return node
	}
	node.SizeBytes = int64(len(data))
	node.MimeType = utils.DetectMimeType(data)
	if utils.IsBinary(data) {
		node.IsBinary = true
		return node
	}
	node.Content = utils.DecodeText(data)
	return node
}
