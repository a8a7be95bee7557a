package safety_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petasbytes/taskrunner/internal/safety"
)

func violationCode(t *testing.T, err error) string {
	t.Helper()
	var v safety.Violation
	require.True(t, errors.As(err, &v), "expected Violation, got %T: %v", err, err)
	return v.Code
}

func TestValidateRelPath_BasicRejections(t *testing.T) {
	root := t.TempDir()

	abs, err := filepath.Abs("notes.txt")
	require.NoError(t, err)
	_, err = safety.ValidateRelPath(root, abs)
	assert.Equal(t, safety.CodeOutsideSandbox, violationCode(t, err))

	_, err = safety.ValidateRelPath(root, "../../x")
	assert.Equal(t, safety.CodeOutsideSandbox, violationCode(t, err))

	_, err = safety.ValidateRelPath(root, "docs/../../x")
	assert.Equal(t, safety.CodeOutsideSandbox, violationCode(t, err))
}

func TestValidateRelPath_Allowed(t *testing.T) {
	root, err := safety.ResolveRoot(t.TempDir())
	require.NoError(t, err)

	got, err := safety.ValidateRelPath(root, "docs/./notes.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "docs", "notes.md"), got)
}

func TestValidateRelPath_ReadDenylist(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".agent"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	for _, p := range []string{".agent/events.jsonl", ".git/HEAD", ".git"} {
		_, err := safety.ValidateRelPath(root, p)
		assert.Equal(t, safety.CodeDeniedRead, violationCode(t, err), p)
	}

	// Only the exact directory names are denied.
	_, err := safety.ValidateRelPath(root, ".gitignore")
	assert.NoError(t, err)
}

func TestValidateRelPath_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test skipped on Windows")
	}
	root, err := safety.ResolveRoot(t.TempDir())
	require.NoError(t, err)
	outside := t.TempDir()

	if err := os.Symlink(outside, filepath.Join(root, "out")); err != nil {
		t.Skipf("symlink not allowed on this FS: %v", err)
	}

	_, err = safety.ValidateRelPath(root, "out/escape.txt")
	assert.Equal(t, safety.CodeOutsideSandbox, violationCode(t, err))
}

func TestResolveRoot_DefaultsToCwd(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(cwd)
	require.NoError(t, err)

	got, err := safety.ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestViolation_ErrorIsJSON(t *testing.T) {
	err := safety.Violation{Code: safety.CodeNotAFile, Message: "path is a directory"}
	assert.JSONEq(t, `{"code":"ERR_NOT_A_FILE","message":"path is a directory"}`, err.Error())
}
