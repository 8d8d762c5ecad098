package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openkraft/devkit/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/devkit/internal/adapters/outbound/preview"
	"github.com/openkraft/devkit/internal/adapters/outbound/recipe"
	"github.com/openkraft/devkit/internal/adapters/outbound/syntax"
	"github.com/openkraft/devkit/internal/application"
	"github.com/openkraft/devkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatchService() *application.PatchService {
	return application.NewPatchService(
		recipe.New(),
		syntax.New(),
		gitinfo.New(),
		preview.New(),
		nil,
	)
}

func patchOpts(root string) domain.PatchOptions {
	return domain.PatchOptions{Root: root, Verify: true}
}

func targetPath(root string) string {
	return filepath.Join(root, "src", "pages", "CourtRoom.tsx")
}

func TestPatchService_Apply_MatchesGolden(t *testing.T) {
	root := copyCourtroom(t)

	report, err := newPatchService().Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRecipe, report.Recipe)
	assert.Equal(t, "src/pages/CourtRoom.tsx", report.Target)
	assert.Len(t, report.Results, 6)
	assert.Equal(t, 6, report.Count(domain.OutcomeApplied))
	assert.True(t, report.Changed)
	assert.True(t, report.Written)
	assert.Empty(t, report.SyntaxIssues)
	assert.Empty(t, report.CommitHash)

	want := readFile(t, filepath.Join(courtroomFixture, "CourtRoom.patched.tsx"))
	assert.Equal(t, want, readFile(t, targetPath(root)))
}

func TestPatchService_Apply_SecondRunIsNoop(t *testing.T) {
	root := copyCourtroom(t)
	svc := newPatchService()

	_, err := svc.Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)
	once := readFile(t, targetPath(root))

	report, err := svc.Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)

	assert.Equal(t, 6, report.Count(domain.OutcomeAlreadyApplied))
	assert.False(t, report.Changed)
	assert.False(t, report.Written)
	assert.Equal(t, once, readFile(t, targetPath(root)))
}

func TestPatchService_Apply_PreservesMode(t *testing.T) {
	root := copyCourtroom(t)
	require.NoError(t, os.Chmod(targetPath(root), 0600))

	_, err := newPatchService().Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)

	info, err := os.Stat(targetPath(root))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPatchService_Apply_MissingTarget(t *testing.T) {
	_, err := newPatchService().Apply(context.Background(), patchOpts(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/pages/CourtRoom.tsx")
}

func TestPatchService_Apply_UnknownRecipe(t *testing.T) {
	_, err := newPatchService().Apply(context.Background(), domain.PatchOptions{
		Root:   copyCourtroom(t),
		Recipe: "no-such-recipe",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading recipe")
}

func TestPatchService_Apply_DriftedSourceIsToleratedByDefault(t *testing.T) {
	root := t.TempDir()
	path := targetPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("export const x = 1;\n"), 0644))

	report, err := newPatchService().Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)

	assert.Equal(t, 5, report.Count(domain.OutcomeSkipped))
	assert.False(t, report.Written)
	assert.Equal(t, "export const x = 1;\n", readFile(t, path))
}

func TestPatchService_Apply_StrictAbortsBeforeWriting(t *testing.T) {
	root := copyCourtroom(t)
	path := targetPath(root)
	original := readFile(t, path)
	// Drop the guard anchor so exactly one step is skipped.
	drifted := strings.Replace(original, "// Court functionality state", "// court state", 1)
	require.NoError(t, os.WriteFile(path, []byte(drifted), 0644))

	opts := patchOpts(root)
	opts.Strict = true
	report, err := newPatchService().Apply(context.Background(), opts)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStepSkipped))
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Count(domain.OutcomeSkipped))
	assert.False(t, report.Written)
	assert.Equal(t, drifted, readFile(t, path))
}

func TestPatchService_Apply_DryRun(t *testing.T) {
	root := copyCourtroom(t)
	original := readFile(t, targetPath(root))

	opts := patchOpts(root)
	opts.DryRun = true
	report, err := newPatchService().Apply(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.True(t, report.Changed)
	assert.False(t, report.Written)
	assert.Contains(t, report.Diff, "+++ b/src/pages/CourtRoom.tsx")
	assert.Contains(t, report.Diff, "useMemo, memo, useRef")
	assert.Equal(t, original, readFile(t, targetPath(root)))
}

const breakingRecipe = `name: break-braces
target: app.tsx
steps:
  - name: extra-braces
    kind: replace
    find: "return <div>ok</div>;\n"
    replace: "return <div>ok</div>;\n}}}\n"
`

func TestPatchService_Apply_SyntaxVerification(t *testing.T) {
	root := t.TempDir()
	src := "export default function App() {\n  return <div>ok</div>;\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(src), 0644))
	recipePath := filepath.Join(root, "break.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(breakingRecipe), 0644))

	opts := domain.PatchOptions{Root: root, Recipe: recipePath, Verify: true}
	report, err := newPatchService().Apply(context.Background(), opts)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSyntax))
	require.NotNil(t, report)
	assert.NotEmpty(t, report.SyntaxIssues)
	assert.Equal(t, src, readFile(t, filepath.Join(root, "app.tsx")))

	opts.Verify = false
	report, err = newPatchService().Apply(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, report.Written)
}

func TestPatchService_Apply_TargetOverride(t *testing.T) {
	root := copyCourtroom(t)
	moved := filepath.Join(root, "CourtRoom.tsx")
	require.NoError(t, os.Rename(targetPath(root), moved))

	opts := patchOpts(root)
	opts.Target = "CourtRoom.tsx"
	report, err := newPatchService().Apply(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "CourtRoom.tsx", report.Target)
	assert.True(t, report.Written)
}

func TestPatchService_Apply_GitRepo(t *testing.T) {
	root := copyCourtroom(t)
	commitAll(t, root)

	// Uncommitted edit that leaves every anchor intact.
	path := targetPath(root)
	require.NoError(t, os.WriteFile(path, []byte(readFile(t, path)+"\n"), 0644))

	report, err := newPatchService().Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)

	assert.Len(t, report.CommitHash, 40)
	assert.True(t, report.Uncommitted)
	assert.True(t, report.Written)
}

func TestPatchService_Apply_CleanGitRepo(t *testing.T) {
	root := copyCourtroom(t)
	commitAll(t, root)

	report, err := newPatchService().Apply(context.Background(), patchOpts(root))
	require.NoError(t, err)
	assert.False(t, report.Uncommitted)
}
