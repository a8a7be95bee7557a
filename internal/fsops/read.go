// Package fsops loads user-supplied files from inside the sandbox root.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/petasbytes/taskrunner/internal/safety"
)

// DefaultMaxBytes caps how much of an attachment is read.
const DefaultMaxBytes = 8 << 20

// Reader reads files addressed relative to a sandbox root.
type Reader struct {
	root     string
	maxBytes int64
}

// NewReader resolves root (empty means the working directory).
func NewReader(root string) (*Reader, error) {
	abs, err := safety.ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	return &Reader{root: abs, maxBytes: DefaultMaxBytes}, nil
}

// Root returns the resolved sandbox root.
func (r *Reader) Root() string { return r.root }

// Load returns the base name and raw bytes of the file at relPath.
// Policy failures are safety.Violation values; I/O failures are ordinary errors.
func (r *Reader) Load(relPath string) (string, []byte, error) {
	abs, err := safety.ValidateRelPath(r.root, relPath)
	if err != nil {
		return "", nil, err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", nil, err
	}
	if fi.IsDir() {
		return "", nil, safety.Violation{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}
	if fi.Size() > r.maxBytes {
		return "", nil, safety.Violation{Code: safety.CodeTooLarge, Message: fmt.Sprintf("file exceeds %d bytes", r.maxBytes)}
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, r.maxBytes))
	if err != nil {
		return "", nil, err
	}
	return filepath.Base(abs), b, nil
}
