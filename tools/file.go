package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/petasbytes/taskrunner/internal/logging"
	"github.com/petasbytes/taskrunner/internal/outcome"
	"github.com/petasbytes/taskrunner/internal/windowing"
)

const (
	// FileErrorLabel prefixes decode and render failures.
	FileErrorLabel = "File processing error"
	// PDFPlaceholder stands in for parsed PDF text.
	PDFPlaceholder = "Simulated PDF content"
	// UnsupportedFileType is analysed in place of content for other suffixes.
	UnsupportedFileType = "Unsupported file type"
)

// File is a named, byte-bearing input.
type File struct {
	Name string
	Data []byte
}

// FileReader renders a file's text as HTML and has the model analyse it.
type FileReader struct {
	analyzer    Analyzer
	promptLimit int
	md          goldmark.Markdown
	logger      *slog.Logger
}

func NewFileReader(a Analyzer, promptLimit int, logger *slog.Logger) *FileReader {
	if promptLimit <= 0 {
		promptLimit = DefaultPromptLimit
	}
	return &FileReader{
		analyzer:    a,
		promptLimit: promptLimit,
		md:          goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
		logger:      logging.OrDiscard(logger),
	}
}

// Read dispatches on the (case-sensitive) name suffix: .txt is decoded as
// UTF-8, .pdf becomes PDFPlaceholder, anything else UnsupportedFileType.
// Invalid UTF-8 in a .txt file is a DecodeError.
func (r *FileReader) Read(ctx context.Context, f File) Result {
	var text string
	supported := true
	switch {
	case strings.HasSuffix(f.Name, ".txt"):
		if !utf8.Valid(f.Data) {
			r.logger.Warn("file decode failed", "name", f.Name, "bytes", len(f.Data))
			return FailedResult{Tool: KindFile, Err: outcome.Fail(outcome.DecodeError, FileErrorLabel, fmt.Errorf("%s is not valid UTF-8", f.Name))}
		}
		text = string(f.Data)
	case strings.HasSuffix(f.Name, ".pdf"):
		text = PDFPlaceholder
	default:
		text = UnsupportedFileType
		supported = false
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return FailedResult{Tool: KindFile, Err: outcome.Fail(outcome.DecodeError, FileErrorLabel, err)}
	}
	rendered := strings.TrimSuffix(buf.String(), "\n")

	excerpt, _ := windowing.Clamp(rendered, r.promptLimit)
	return FileResult{
		Name:      f.Name,
		Content:   rendered,
		Supported: supported,
		Analysis:  r.analyzer.Generate(ctx, "Analyze file content: "+excerpt),
	}
}
