package main_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "devkit-e2e")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(dir, "devkit")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func run(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func TestE2E_LintSummary_DefaultReportInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "eslint-report.json"),
		[]byte(`[{"filePath":"a.ts","messages":[{"line":1,"column":2,"ruleId":"semi","message":"Missing semicolon."}]}]`), 0644))

	out, code := run(t, dir, "lint-summary")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Total files with errors: 1")
	assert.Contains(t, out, "a.ts:1:2 semi Missing semicolon.")
}

func TestE2E_LintSummary_MissingReportExitsNonZero(t *testing.T) {
	_, code := run(t, t.TempDir(), "lint-summary")
	assert.NotEqual(t, 0, code)
}

func TestE2E_Patch_MissingTargetExitsOne(t *testing.T) {
	out, code := run(t, t.TempDir(), "patch")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error applying fixes")
}

func TestE2E_Patch_AppliesFixture(t *testing.T) {
	src, err := os.ReadFile("../../testdata/courtroom/src/pages/CourtRoom.tsx")
	require.NoError(t, err)
	root := t.TempDir()
	target := filepath.Join(root, "src", "pages", "CourtRoom.tsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, src, 0644))

	out, code := run(t, root, "patch", "--root", root)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "All fixes applied successfully!")
}

func TestE2E_Slice_MissingFileExitsNonZero(t *testing.T) {
	_, code := run(t, t.TempDir(), "slice")
	assert.NotEqual(t, 0, code)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, t.TempDir(), "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "devkit")
}
