package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// Digest is a content hash used for cache keys and invalidation.
type Digest [32]byte

// UnitFile captures metadata and raw content for one compilation-unit
// description file.
type UnitFile struct {
	ID      UnitID
	Path    string
	Content []byte
	Hash    Digest
}

// Span returns a span covering the whole file content.
func (f *UnitFile) Span() Span {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		// Unit files are small declaration descriptions; a >4GiB file is
		// not a unit file.
		end = ^uint32(0)
	}
	return Span{Unit: f.ID, Start: 0, End: end}
}

// UnitSet manages the compilation-unit files of one lowering session.
type UnitSet struct {
	units []UnitFile
	index map[string]UnitID
}

// NewUnitSet creates an empty UnitSet.
func NewUnitSet() *UnitSet {
	return &UnitSet{index: make(map[string]UnitID)}
}

// Load reads a unit file from disk and registers it. Loading the same path
// twice returns the previously registered unit.
func (us *UnitSet) Load(path string) (*UnitFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	if id, ok := us.index[abs]; ok {
		return us.Get(id), nil
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return us.add(abs, content), nil
}

// AddVirtual registers in-memory content under the given name (tests, stdin).
func (us *UnitSet) AddVirtual(name string, content []byte) *UnitFile {
	if id, ok := us.index[name]; ok {
		return us.Get(id)
	}
	return us.add(name, content)
}

func (us *UnitSet) add(path string, content []byte) *UnitFile {
	id := UnitID(len(us.units) + 1) //nolint:gosec // bounded by unit count
	us.units = append(us.units, UnitFile{
		ID:      id,
		Path:    path,
		Content: content,
		Hash:    sha256.Sum256(content),
	})
	us.index[path] = id
	return &us.units[len(us.units)-1]
}

// Get returns the unit file for id, or nil if unknown.
func (us *UnitSet) Get(id UnitID) *UnitFile {
	if !id.IsValid() || int(id) > len(us.units) {
		return nil
	}
	return &us.units[id-1]
}

// Len returns the number of registered units.
func (us *UnitSet) Len() int {
	return len(us.units)
}
