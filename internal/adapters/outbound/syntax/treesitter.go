package syntax

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/openkraft/devkit/internal/domain"
)

// maxIssues caps how many error nodes are reported for one file.
const maxIssues = 10

// TreeSitterChecker implements domain.SyntaxChecker with tree-sitter grammars.
type TreeSitterChecker struct{}

func New() *TreeSitterChecker {
	return &TreeSitterChecker{}
}

// Check parses src with the grammar chosen by the file extension of path.
// Files with no matching grammar are not checked.
func (c *TreeSitterChecker) Check(ctx context.Context, path string, src []byte) ([]domain.SyntaxIssue, error) {
	lang := languageFor(path)
	if lang == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var issues []domain.SyntaxIssue
	collectErrors(root, &issues)
	return issues, nil
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	default:
		return nil
	}
}

func collectErrors(node *sitter.Node, issues *[]domain.SyntaxIssue) {
	if node == nil || len(*issues) >= maxIssues {
		return
	}
	if node.IsError() || node.IsMissing() {
		*issues = append(*issues, issueAt(node))
		return
	}
	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), issues)
	}
}

func issueAt(node *sitter.Node) domain.SyntaxIssue {
	p := node.StartPoint()
	row, err := safecast.Conv[int](p.Row)
	if err != nil {
		row = 0
	}
	col, err := safecast.Conv[int](p.Column)
	if err != nil {
		col = 0
	}

	msg := "unexpected syntax"
	if node.IsMissing() {
		msg = fmt.Sprintf("missing %q", node.Type())
	}
	return domain.SyntaxIssue{Line: row + 1, Column: col + 1, Message: msg}
}
