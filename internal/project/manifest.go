package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"lumen/internal/decl"
)

// ManifestName is the file name of a project manifest.
const ManifestName = "lumen.toml"

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a
	// manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrBadVisibility indicates an unknown visibility name in [export].
	ErrBadVisibility = errors.New("unknown visibility")
)

// ExportConfig controls which declarations join the exported surface of a
// unit. A declaration is export-eligible when its visibility is at least
// the configured minimum and its name passes the include/exclude lists.
type ExportConfig struct {
	MinVisibility decl.Visibility
	Include       map[string]struct{}
	Exclude       map[string]struct{}
}

// Admits reports whether a declaration with the given name and visibility
// belongs to the exported surface.
func (c *ExportConfig) Admits(name string, vis decl.Visibility) bool {
	if c == nil {
		return vis == decl.VisPublic
	}
	if _, ok := c.Exclude[name]; ok {
		return false
	}
	if _, ok := c.Include[name]; ok {
		return true
	}
	return vis >= c.MinVisibility
}

// Manifest describes a lumen.toml project manifest.
type Manifest struct {
	Name   string
	Root   string
	Export ExportConfig
}

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Export struct {
		Visibility string   `toml:"visibility"`
		Include    []string `toml:"include"`
		Exclude    []string `toml:"exclude"`
	} `toml:"export"`
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}

	m := &Manifest{
		Name: cfg.Package.Name,
		Root: filepath.Dir(path),
		Export: ExportConfig{
			MinVisibility: decl.VisPublic,
		},
	}
	if meta.IsDefined("export", "visibility") {
		vis, err := parseVisibility(cfg.Export.Visibility)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Export.MinVisibility = vis
	}
	m.Export.Include = toSet(cfg.Export.Include)
	m.Export.Exclude = toSet(cfg.Export.Exclude)
	return m, nil
}

// Find walks up from dir looking for a lumen.toml. It returns nil with no
// error when none exists.
func Find(dir string) (*Manifest, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(cur, ManifestName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, nil
		}
		cur = parent
	}
}

func parseVisibility(s string) (decl.Visibility, error) {
	switch s {
	case "private":
		return decl.VisPrivate, nil
	case "internal":
		return decl.VisInternal, nil
	case "public", "":
		return decl.VisPublic, nil
	}
	return decl.VisPublic, fmt.Errorf("%w: %q", ErrBadVisibility, s)
}

func toSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}
