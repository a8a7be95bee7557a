// Package safety confines file access to a sandbox root.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Violation codes.
const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedRead     = "ERR_DENIED_READ"
	CodeNotAFile       = "ERR_NOT_A_FILE"
	CodeTooLarge       = "ERR_FILE_TOO_LARGE"
)

// Violation is a machine-readable policy error.
type Violation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string.
func (e Violation) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// ResolveRoot returns root as an absolute, symlink-resolved path.
// An empty root means the current working directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(root): %w", err)
	}
	// A missing root stays as-is; later lookups fail with a normal not-exist error.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateRelPath resolves relPath against absRoot and returns an absolute path
// inside the sandbox. Absolute inputs, parent traversal and symlink escapes are
// rejected, as are reads under .git/ and .agent/.
func ValidateRelPath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", Violation{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}

	candidate := filepath.Join(absRoot, filepath.Clean(relPath))

	// Resolve the whole candidate, or failing that its parent, so a symlinked
	// directory cannot smuggle the leaf outside the root.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if parent, err := filepath.EvalSymlinks(filepath.Dir(candidate)); err == nil {
		candidate = filepath.Join(parent, filepath.Base(candidate))
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", Violation{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}

	if deniedRead(filepath.ToSlash(rel)) {
		return "", Violation{Code: CodeDeniedRead, Message: "reads under .git/ or .agent/ are not allowed"}
	}
	return candidate, nil
}

func deniedRead(rel string) bool {
	for _, dir := range []string{".git", ".agent"} {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}
