package extractor

import (
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/implhint/implhint/internal/facts"
)

// ForFile extracts facts for the package owning path: every Go file in the
// file's directory. When the directory yields no packages at all (for
// example a directory holding only unparsable files), the parent directory
// is scanned once as a fallback.
func ForFile(path string, logger *slog.Logger) (*facts.Result, error) {
	dir := filepath.Dir(path)

	result, err := Directory(dir, logger)
	if err != nil {
		return nil, err
	}

	if result.Empty() {
		if parent := filepath.Dir(dir); parent != dir {
			logger.Debug("no packages found, scanning parent directory", "dir", dir, "parent", parent)
			return Directory(parent, logger)
		}
	}

	return result, nil
}

// Directory extracts facts from every Go file directly inside dir, merged
// into one package per declared package path. Files excluded by a
// .gitignore are skipped, as are files that fail to parse — one bad file
// never blocks the rest of the package.
func Directory(dir string, logger *slog.Logger) (*facts.Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("listing Go files in %s: %w", dir, err)
	}

	matcher := loadIgnoreMatcher(dir)
	result := facts.NewResult()
	fset := token.NewFileSet()

	for _, path := range paths {
		if matcher.ignored(path) {
			logger.Debug("skipping gitignored file", "file", path)
			continue
		}

		ff, err := File(fset, path, nil)
		if err != nil {
			logger.Warn("failed to parse file, skipping", "file", path, "error", err)
			continue
		}

		pkg := result.PackageFor(filepath.Dir(path), ff.PackageName)
		pkg.Interfaces = append(pkg.Interfaces, ff.Interfaces...)
		pkg.Structs = append(pkg.Structs, ff.Structs...)
		pkg.Methods = append(pkg.Methods, ff.Methods...)
		pkg.Directives = append(pkg.Directives, ff.Directives...)
	}

	return result, nil
}

// ignoreMatcher pairs a compiled .gitignore with the directory it was loaded
// from, so paths can be matched relative to it.
type ignoreMatcher struct {
	gi   *ignore.GitIgnore
	root string
}

func (m ignoreMatcher) ignored(path string) bool {
	if m.gi == nil {
		return false
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}
	return m.gi.MatchesPath(rel)
}

// loadIgnoreMatcher finds the nearest .gitignore at or above dir, stopping
// at the repository root (the first directory containing .git).
func loadIgnoreMatcher(dir string) ignoreMatcher {
	current := dir
	for {
		giPath := filepath.Join(current, ".gitignore")
		if _, err := os.Stat(giPath); err == nil {
			if gi, err := ignore.CompileIgnoreFile(giPath); err == nil {
				return ignoreMatcher{gi: gi, root: current}
			}
		}
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ignoreMatcher{}
}
