package application_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	courtroomFixture = "../../testdata/courtroom"
	lintFixture      = "../../testdata/lint/eslint-report.json"
	docsFixture      = "../../testdata/docs/EDGE_FUNCTIONS_DEPLOYMENT.md"
)

// copyCourtroom lays out the unpatched CourtRoom fixture under a fresh root
// and returns the root.
func copyCourtroom(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src, err := os.ReadFile(filepath.Join(courtroomFixture, "src", "pages", "CourtRoom.tsx"))
	require.NoError(t, err)

	dst := filepath.Join(root, "src", "pages", "CourtRoom.tsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
	require.NoError(t, os.WriteFile(dst, src, 0644))
	return root
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}

func commitAll(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
}
