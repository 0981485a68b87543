// Package extractor turns Go source text into facts: interface and struct
// declarations, receiver-bound methods, and explicit implementation
// directives. Extraction is purely syntactic — no type checking, no
// cross-package resolution — and it never fails hard: constructs it cannot
// read are skipped, files it cannot parse contribute nothing.
package extractor

import (
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/implhint/implhint/internal/facts"
)

// FileFacts is one source file's contribution to its package.
type FileFacts struct {
	PackageName string
	Interfaces  []facts.Interface
	Structs     []facts.Struct
	Methods     []facts.MethodImpl
	Directives  []facts.Directive
}

// File parses one source file and extracts its facts. src may be nil, in
// which case the file is read from disk. A parse failure yields an error and
// no facts; callers are expected to skip the file and move on.
func File(fset *token.FileSet, path string, src []byte) (*FileFacts, error) {
	// A typed-nil []byte would stop ParseFile from reading the file itself.
	var source any
	if src != nil {
		source = src
	}
	node, err := parser.ParseFile(fset, path, source, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	ff := &FileFacts{PackageName: node.Name.Name}

	in := inspector.New([]*ast.File{node})
	nodeTypes := []ast.Node{(*ast.TypeSpec)(nil), (*ast.FuncDecl)(nil)}
	in.Preorder(nodeTypes, func(n ast.Node) {
		switch decl := n.(type) {
		case *ast.TypeSpec:
			switch t := decl.Type.(type) {
			case *ast.InterfaceType:
				ff.Interfaces = append(ff.Interfaces, extractInterface(fset, path, decl, t))
			case *ast.StructType:
				ff.Structs = append(ff.Structs, extractStruct(fset, path, decl, t))
			}
		case *ast.FuncDecl:
			if m, ok := extractMethod(fset, path, decl); ok {
				ff.Methods = append(ff.Methods, m)
			}
		}
	})

	ff.Directives = extractDirectives(fset, path, node)

	return ff, nil
}

func extractInterface(fset *token.FileSet, path string, spec *ast.TypeSpec, iface *ast.InterfaceType) facts.Interface {
	out := facts.Interface{
		Name:     spec.Name.Name,
		Line:     lineOf(fset, spec.Pos()),
		FilePath: path,
		Methods:  []facts.Method{},
	}

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				out.Methods = append(out.Methods, facts.Method{
					Name:     name.Name,
					Line:     lineOf(fset, field.Pos()),
					FilePath: path,
				})
			}
			continue
		}
		// Bare identifier: an embedded interface. The model keeps a single
		// slot, so the last one seen wins.
		if name, _ := typeNameOf(field.Type); name != "" {
			out.Embedded = name
		}
	}

	return out
}

func extractStruct(fset *token.FileSet, path string, spec *ast.TypeSpec, st *ast.StructType) facts.Struct {
	out := facts.Struct{
		Name:     spec.Name.Name,
		Line:     lineOf(fset, spec.Pos()),
		FilePath: path,
		Fields:   []facts.Field{},
	}

	for _, field := range st.Fields.List {
		typeName, isPointer := typeNameOf(field.Type)
		if typeName == "" {
			continue // unrecognized type expression, e.g. a func or map type
		}

		if len(field.Names) == 0 {
			out.Fields = append(out.Fields, facts.Field{
				Name:      typeName, // an embedded field's name is its type
				Type:      typeName,
				Line:      lineOf(fset, field.Pos()),
				FilePath:  path,
				Embedded:  true,
				IsPointer: isPointer,
			})
			continue
		}

		for _, name := range field.Names {
			out.Fields = append(out.Fields, facts.Field{
				Name:      name.Name,
				Type:      typeName,
				Line:      lineOf(fset, field.Pos()),
				FilePath:  path,
				IsPointer: isPointer,
			})
		}
	}

	return out
}

func extractMethod(fset *token.FileSet, path string, decl *ast.FuncDecl) (facts.MethodImpl, bool) {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return facts.MethodImpl{}, false
	}

	typeName, isPointer := typeNameOf(decl.Recv.List[0].Type)
	if typeName == "" {
		return facts.MethodImpl{}, false
	}

	return facts.MethodImpl{
		ReceiverType: typeName,
		MethodName:   decl.Name.Name,
		Line:         lineOf(fset, decl.Pos()),
		FilePath:     path,
		IsPointer:    isPointer,
	}, true
}

// typeNameOf extracts the bare type name from a type expression, reporting
// pointer indirection separately. Expressions beyond plain identifiers,
// pointers to identifiers, and qualified identifiers yield "".
func typeNameOf(expr ast.Expr) (name string, isPointer bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, false
	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name, true
		}
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name + "." + t.Sel.Name, false
		}
	}
	return "", false
}

func lineOf(fset *token.FileSet, pos token.Pos) int {
	return fset.Position(pos).Line
}
