// Package aggregator folds one package's per-file facts into name-keyed
// maps suitable for lookup and satisfaction checks, preserving source
// provenance per entry.
package aggregator

import (
	"strings"

	"github.com/implhint/implhint/internal/facts"
)

// DefMarker is the reserved key under which a type's own definition site is
// stored inside its method map. "$" cannot start a Go identifier, so the
// marker can never collide with a real method name. Any method-listing or
// method-counting logic must filter it out.
const DefMarker = "$def"

// PackageIndex is the aggregated, map-shaped view of one package.
//
// Methods is keyed by receiver spelling: value receivers under "T", pointer
// receivers under "*T". The two sets for the same base name are distinct
// here and unified only at query/resolution time. Receiver names with no
// extracted struct declaration (aliases, forms the extractor did not
// recognize) still get an entry.
type PackageIndex struct {
	Path string
	Name string

	Interfaces map[string]map[string]facts.Method
	Methods    map[string]map[string]facts.Method
	Fields     map[string]map[string]facts.Field
	Structs    map[string]facts.Struct
	Directives []facts.Directive
}

// Index aggregates pkg into a PackageIndex. Within one receiver's or one
// interface's method set, a genuinely duplicated name is resolved
// last-write-wins in file scan order.
func Index(pkg *facts.Package) *PackageIndex {
	idx := &PackageIndex{
		Path:       pkg.Path,
		Name:       pkg.Name,
		Interfaces: make(map[string]map[string]facts.Method),
		Methods:    make(map[string]map[string]facts.Method),
		Fields:     make(map[string]map[string]facts.Field),
		Structs:    make(map[string]facts.Struct),
		Directives: pkg.Directives,
	}

	for _, iface := range pkg.Interfaces {
		set := make(map[string]facts.Method, len(iface.Methods)+1)
		set[DefMarker] = facts.Method{Name: iface.Name, Line: iface.Line, FilePath: iface.FilePath}
		for _, m := range iface.Methods {
			set[m.Name] = m
		}
		idx.Interfaces[iface.Name] = set
	}

	for _, st := range pkg.Structs {
		idx.Structs[st.Name] = st

		fields := make(map[string]facts.Field, len(st.Fields))
		for _, f := range st.Fields {
			fields[f.Name] = f
		}
		idx.Fields[st.Name] = fields

		// Seed the value-receiver method set with the definition site so a
		// struct with no methods still has a locatable entry.
		set := idx.methodSet(st.Name)
		set[DefMarker] = facts.Method{Name: st.Name, Line: st.Line, FilePath: st.FilePath}
	}

	for _, m := range pkg.Methods {
		key := m.ReceiverType
		if m.IsPointer {
			key = "*" + m.ReceiverType
		}
		set := idx.methodSet(key)
		set[m.MethodName] = facts.Method{Name: m.MethodName, Line: m.Line, FilePath: m.FilePath}
	}

	return idx
}

func (idx *PackageIndex) methodSet(key string) map[string]facts.Method {
	set, ok := idx.Methods[key]
	if !ok {
		set = make(map[string]facts.Method)
		idx.Methods[key] = set
	}
	return set
}

// ReceiverBaseNames returns every receiver type name that has at least one
// method, with pointer spellings folded into their base name.
func (idx *PackageIndex) ReceiverBaseNames() []string {
	seen := make(map[string]bool)
	var names []string
	for key := range idx.Methods {
		base := strings.TrimPrefix(key, "*")
		if !seen[base] {
			seen[base] = true
			names = append(names, base)
		}
	}
	return names
}

// EffectiveMethods returns the unified method set for a receiver base name:
// the union of its value-receiver and pointer-receiver sets, with the
// definition marker filtered out. This is the method set satisfaction
// checks run against.
func (idx *PackageIndex) EffectiveMethods(name string) map[string]facts.Method {
	out := make(map[string]facts.Method)
	for key, m := range idx.Methods[name] {
		if key != DefMarker {
			out[key] = m
		}
	}
	for key, m := range idx.Methods["*"+name] {
		if key != DefMarker {
			out[key] = m
		}
	}
	return out
}
