package tools_test

import (
	"context"
	"strings"

	"github.com/petasbytes/taskrunner/internal/outcome"
)

// recorder is an Analyzer that records prompts and replies with a fixed text.
type recorder struct {
	reply   outcome.Text
	prompts []string
}

func newRecorder(reply string) *recorder { return &recorder{reply: outcome.Ok(reply)} }

func (r *recorder) Generate(_ context.Context, prompt string) outcome.Text {
	r.prompts = append(r.prompts, prompt)
	return r.reply
}

func (r *recorder) last() string {
	if len(r.prompts) == 0 {
		return ""
	}
	return r.prompts[len(r.prompts)-1]
}

// stripPrefix returns what follows prefix in s, or "" when s lacks it.
func stripPrefix(s, prefix string) string {
	if !strings.HasPrefix(s, prefix) {
		return ""
	}
	return s[len(prefix):]
}
