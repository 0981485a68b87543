// Package facts holds the value types produced by source extraction: the
// interfaces, structs, receiver methods, and comment directives found in one
// directory-scoped package. Facts are immutable once built; a reparse
// produces a fresh set rather than mutating the old one.
package facts

// Method is one method signature declared inside an interface body.
type Method struct {
	Name     string `json:"name"`
	Line     int    `json:"line"`
	FilePath string `json:"filePath"`
}

// Interface is a named interface declaration. Methods holds only the
// directly declared signatures; a single embedded interface identifier, if
// present, lands in Embedded and is not expanded into Methods.
type Interface struct {
	Name     string   `json:"name"`
	Line     int      `json:"line"`
	FilePath string   `json:"filePath"`
	Methods  []Method `json:"methods"`
	Embedded string   `json:"internalType,omitempty"`
}

// Field is one struct field. For embedded fields Name equals Type: the
// field's identity is its type. The pointer marker is never part of Type.
type Field struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Line      int    `json:"line"`
	FilePath  string `json:"filePath"`
	Embedded  bool   `json:"embedded"`
	IsPointer bool   `json:"isPointer"`
}

// Struct is a named struct declaration with its fields in source order.
type Struct struct {
	Name     string  `json:"name"`
	Line     int     `json:"line"`
	FilePath string  `json:"filePath"`
	Fields   []Field `json:"fields"`
}

// MethodImpl is a function declaration with a receiver clause.
// ReceiverType carries the bare type name; pointer indirection is recorded
// separately so pointer and value receivers can be unified later.
type MethodImpl struct {
	ReceiverType string `json:"receiverType"`
	MethodName   string `json:"methodName"`
	Line         int    `json:"line"`
	FilePath     string `json:"filePath"`
	IsPointer    bool   `json:"isPointer"`
}

// Directive is an explicit implementation declaration read from a comment,
// e.g. "// ensure FileStore implements Store". It forces an implementation
// edge regardless of method matching.
type Directive struct {
	StructName    string `json:"structName"`
	InterfaceName string `json:"interfaceName"`
	Line          int    `json:"line"`
	FilePath      string `json:"filePath"`
}

// Package aggregates the contributions of every file that shares a declared
// package name inside one directory.
type Package struct {
	Path       string       `json:"path"`
	Name       string       `json:"name"`
	Interfaces []Interface  `json:"interfaces"`
	Structs    []Struct     `json:"structs"`
	Methods    []MethodImpl `json:"methods"`
	Directives []Directive  `json:"directives,omitempty"`
}

// Result is the top-level analysis output, keyed by package directory path.
// An empty Packages map means "no usable facts" and is not an error.
type Result struct {
	Packages map[string]*Package `json:"packages"`
}

// NewResult returns an empty Result ready to receive packages.
func NewResult() *Result {
	return &Result{Packages: make(map[string]*Package)}
}

// Empty reports whether the result carries no packages at all.
func (r *Result) Empty() bool {
	return r == nil || len(r.Packages) == 0
}

// PackageFor returns the package that owns dir, creating it on first use.
func (r *Result) PackageFor(dir, name string) *Package {
	if pkg, ok := r.Packages[dir]; ok {
		return pkg
	}
	pkg := &Package{
		Path:       dir,
		Name:       name,
		Interfaces: []Interface{},
		Structs:    []Struct{},
		Methods:    []MethodImpl{},
	}
	r.Packages[dir] = pkg
	return pkg
}
