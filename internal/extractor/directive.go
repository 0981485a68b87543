package extractor

import (
	"go/ast"
	"go/token"
	"regexp"

	"github.com/implhint/implhint/internal/facts"
)

// directivePattern matches the explicit implementation declaration in either
// of its two accepted spellings:
//
//	// ensure FileStore implements Store
//	// 确保 FileStore 实现 Store
//
// The directive may appear anywhere in a file, in any comment group.
var directivePattern = regexp.MustCompile(`(?:ensure|确保)\s+(\w+)\s+(?:implements|实现)\s+(\w+)`)

func extractDirectives(fset *token.FileSet, path string, node *ast.File) []facts.Directive {
	var out []facts.Directive
	for _, group := range node.Comments {
		for _, comment := range group.List {
			m := directivePattern.FindStringSubmatch(comment.Text)
			if m == nil {
				continue
			}
			out = append(out, facts.Directive{
				StructName:    m[1],
				InterfaceName: m[2],
				Line:          lineOf(fset, comment.Pos()),
				FilePath:      path,
			})
		}
	}
	return out
}
