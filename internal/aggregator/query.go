package aggregator

import (
	"sort"

	"github.com/implhint/implhint/internal/facts"
)

// The query surface consumed by UI layers: names, method lists, and
// (method or definition) → location lookups. Everything here returns
// copies; the index itself stays immutable after construction.

// InterfaceNames returns the names of all interfaces in the package, sorted.
func (idx *PackageIndex) InterfaceNames() []string {
	names := make([]string, 0, len(idx.Interfaces))
	for name := range idx.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InterfaceMethods returns an interface's directly declared methods sorted
// by name, or nil when the interface is unknown.
func (idx *PackageIndex) InterfaceMethods(name string) []facts.Method {
	set, ok := idx.Interfaces[name]
	if !ok {
		return nil
	}
	return sortedMethods(set)
}

// InterfaceLocations returns an interface's location map: each declared
// method name plus the DefMarker entry for the declaration itself.
func (idx *PackageIndex) InterfaceLocations(name string) map[string]facts.Method {
	return copySet(idx.Interfaces[name])
}

// ReceiverLocations returns the location map for a receiver type: the union
// of its value- and pointer-receiver method sets plus the DefMarker entry
// when the type's declaration was extracted.
func (idx *PackageIndex) ReceiverLocations(name string) map[string]facts.Method {
	out := make(map[string]facts.Method)
	for key, m := range idx.Methods[name] {
		out[key] = m
	}
	for key, m := range idx.Methods["*"+name] {
		if _, exists := out[key]; !exists {
			out[key] = m
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StructFields returns a struct's fields sorted by name, or nil when the
// struct is unknown.
func (idx *PackageIndex) StructFields(name string) []facts.Field {
	set, ok := idx.Fields[name]
	if !ok {
		return nil
	}
	fields := make([]facts.Field, 0, len(set))
	for _, f := range set {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// StructDef returns a struct's declaration fact.
func (idx *PackageIndex) StructDef(name string) (facts.Struct, bool) {
	st, ok := idx.Structs[name]
	return st, ok
}

func sortedMethods(set map[string]facts.Method) []facts.Method {
	methods := make([]facts.Method, 0, len(set))
	for key, m := range set {
		if key == DefMarker {
			continue
		}
		methods = append(methods, m)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods
}

func copySet(set map[string]facts.Method) map[string]facts.Method {
	if set == nil {
		return nil
	}
	out := make(map[string]facts.Method, len(set))
	for key, m := range set {
		out[key] = m
	}
	return out
}
