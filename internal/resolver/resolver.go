// Package resolver computes which struct types satisfy which interfaces
// from aggregated package facts. Satisfaction comes from three sources, in
// priority order: explicit comment directives, method-set matching with a
// tolerance threshold, and closure over embedded fields.
package resolver

import (
	"log/slog"
	"sort"

	"github.com/implhint/implhint/internal/aggregator"
)

// DefaultPartialMatchThreshold is the fraction of an interface's methods a
// type must provide to count as satisfying it. Full matches (1.0) are always
// accepted; anything at or above the threshold is accepted as a partial
// match to tolerate methods the extractor failed to see. The value is a
// heuristic carried over from long-standing behavior, kept configurable
// rather than baked in.
const DefaultPartialMatchThreshold = 0.8

// DefaultMaxClosurePasses bounds the embedding-closure iteration. The
// closure converges within the embedding depth of the package; the cap is a
// safety bound against pathological cyclic embedding graphs, not a
// correctness requirement.
const DefaultMaxClosurePasses = 10

// Options tunes resolution behavior. The zero value selects the defaults.
type Options struct {
	PartialMatchThreshold float64
	MaxClosurePasses      int
}

func (o Options) withDefaults() Options {
	if o.PartialMatchThreshold <= 0 {
		o.PartialMatchThreshold = DefaultPartialMatchThreshold
	}
	if o.MaxClosurePasses <= 0 {
		o.MaxClosurePasses = DefaultMaxClosurePasses
	}
	return o
}

// Via records which rule produced an implementation edge.
type Via string

const (
	ViaExplicit  Via = "explicit"
	ViaMethods   Via = "methods"
	ViaEmbedding Via = "embedding"
)

// Edge is one discovered (interface, implementing type) pair. MatchRate is
// the method-set match fraction for ViaMethods edges and 1.0 otherwise.
type Edge struct {
	Interface string  `json:"interface"`
	Struct    string  `json:"struct"`
	Via       Via     `json:"via"`
	MatchRate float64 `json:"matchRate"`
}

// Resolution is the computed satisfaction relation for one package.
type Resolution struct {
	Edges        []Edge              `json:"edges"`
	Implementers map[string][]string `json:"implementers"`
	Satisfied    []string            `json:"satisfiedInterfaces"`

	byPair map[string]map[string]bool
}

// Implements reports whether an edge from ifaceName to typeName was found.
func (r *Resolution) Implements(ifaceName, typeName string) bool {
	return r.byPair[ifaceName][typeName]
}

func (r *Resolution) add(e Edge) bool {
	set, ok := r.byPair[e.Interface]
	if !ok {
		set = make(map[string]bool)
		r.byPair[e.Interface] = set
	}
	if set[e.Struct] {
		return false
	}
	set[e.Struct] = true
	r.Edges = append(r.Edges, e)
	return true
}

// Resolve computes the satisfaction relation for idx. It never fails: names
// absent from the index simply contribute nothing.
func Resolve(idx *aggregator.PackageIndex, opts Options, logger *slog.Logger) *Resolution {
	opts = opts.withDefaults()
	res := &Resolution{byPair: make(map[string]map[string]bool)}

	applyDirectives(idx, res, logger)
	matchMethodSets(idx, res, opts, logger)
	closeOverEmbedding(idx, res, opts, logger)

	finalize(res)

	logger.Debug("resolution complete",
		"package", idx.Path,
		"edges", len(res.Edges),
		"satisfied", len(res.Satisfied))

	return res
}

// applyDirectives records every explicit declaration whose target interface
// exists. These edges take precedence and exempt their pair from matching.
func applyDirectives(idx *aggregator.PackageIndex, res *Resolution, logger *slog.Logger) {
	for _, d := range idx.Directives {
		if _, ok := idx.Interfaces[d.InterfaceName]; !ok {
			logger.Debug("directive names unknown interface, ignored",
				"struct", d.StructName, "interface", d.InterfaceName, "file", d.FilePath)
			continue
		}
		res.add(Edge{
			Interface: d.InterfaceName,
			Struct:    d.StructName,
			Via:       ViaExplicit,
			MatchRate: 1.0,
		})
	}
}

// matchMethodSets compares every interface's method set against every
// candidate type's effective method set. Candidates are all declared struct
// names plus all receiver type names seen on methods, so a receiver whose
// declaration the extractor never recognized still participates.
func matchMethodSets(idx *aggregator.PackageIndex, res *Resolution, opts Options, logger *slog.Logger) {
	candidates := candidateNames(idx)

	for _, ifaceName := range idx.InterfaceNames() {
		methods := idx.InterfaceMethods(ifaceName)
		// A zero-method interface would trivially match everything.
		if len(methods) == 0 {
			continue
		}

		for _, candidate := range candidates {
			if res.byPair[ifaceName][candidate] {
				continue
			}

			effective := idx.EffectiveMethods(candidate)
			matched := 0
			for _, m := range methods {
				if _, ok := effective[m.Name]; ok {
					matched++
				}
			}

			rate := float64(matched) / float64(len(methods))
			if rate >= opts.PartialMatchThreshold {
				res.add(Edge{
					Interface: ifaceName,
					Struct:    candidate,
					Via:       ViaMethods,
					MatchRate: rate,
				})
				logger.Debug("match found",
					"interface", ifaceName, "type", candidate, "rate", rate)
			}
		}
	}
}

// closeOverEmbedding propagates satisfaction through embedded fields until
// no new edge appears. A struct embedding a type that satisfies I, or
// embedding the interface type I itself, satisfies I. The pass cap bounds
// cyclic embedding graphs.
func closeOverEmbedding(idx *aggregator.PackageIndex, res *Resolution, opts Options, logger *slog.Logger) {
	structNames := make([]string, 0, len(idx.Structs))
	for name := range idx.Structs {
		structNames = append(structNames, name)
	}
	sort.Strings(structNames)

	ifaceNames := idx.InterfaceNames()

	for pass := 0; pass < opts.MaxClosurePasses; pass++ {
		changed := false

		for _, structName := range structNames {
			st := idx.Structs[structName]
			for _, f := range st.Fields {
				if !f.Embedded {
					continue
				}
				for _, ifaceName := range ifaceNames {
					if res.byPair[ifaceName][structName] {
						continue
					}
					if f.Type == ifaceName || res.byPair[ifaceName][f.Type] {
						if res.add(Edge{
							Interface: ifaceName,
							Struct:    structName,
							Via:       ViaEmbedding,
							MatchRate: 1.0,
						}) {
							changed = true
						}
					}
				}
			}
		}

		if !changed {
			return
		}
	}

	logger.Warn("embedding closure hit pass cap before converging",
		"package", idx.Path, "cap", opts.MaxClosurePasses)
}

func candidateNames(idx *aggregator.PackageIndex) []string {
	seen := make(map[string]bool)
	var names []string
	for name := range idx.Structs {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range idx.ReceiverBaseNames() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func finalize(res *Resolution) {
	sort.Slice(res.Edges, func(i, j int) bool {
		if res.Edges[i].Interface != res.Edges[j].Interface {
			return res.Edges[i].Interface < res.Edges[j].Interface
		}
		return res.Edges[i].Struct < res.Edges[j].Struct
	})

	res.Implementers = make(map[string][]string, len(res.byPair))
	for ifaceName, set := range res.byPair {
		if len(set) == 0 {
			continue
		}
		impls := make([]string, 0, len(set))
		for name := range set {
			impls = append(impls, name)
		}
		sort.Strings(impls)
		res.Implementers[ifaceName] = impls
		res.Satisfied = append(res.Satisfied, ifaceName)
	}
	sort.Strings(res.Satisfied)
}
