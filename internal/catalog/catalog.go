// Package catalog lists the levels available to the player and hands out
// sources that re-read a level every time it is (re)started.
//
// Levels come from three places: descriptors embedded in the binary, a level
// directory scanned at startup, and the SQLite level library. A level found in
// a later place shadows a built-in level with the same ID.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-dash/internal/level"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

//go:embed levels/*.json
var builtinFS embed.FS

// DefaultID is the built-in level used when nothing else can be loaded.
const DefaultID = "level1"

// ErrUnknownLevel is returned for IDs that are not in the catalog.
var ErrUnknownLevel = errors.New("catalog: unknown level")

// Origin tells where a level descriptor lives.
type Origin int

const (
	OriginBuiltin Origin = iota
	OriginFile
	OriginLibrary
)

// String returns a short label for listings.
func (o Origin) String() string {
	switch o {
	case OriginBuiltin:
		return "built-in"
	case OriginFile:
		return "file"
	case OriginLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// Entry is one playable level.
type Entry struct {
	ID     string
	Title  string
	Origin Origin
	Path   string // Embedded or on-disk path; empty for library levels
	Format level.Format
}

// Problem is a descriptor that was found but could not be used.
type Problem struct {
	Path string
	Err  error
}

func (p Problem) Error() string {
	return fmt.Sprintf("%s: %v", p.Path, p.Err)
}

// Library is the part of the level library the catalog reads.
type Library interface {
	ListLevels() ([]storage.LevelInfo, error)
	LevelData(id string) (storage.LevelRecord, error)
}

// Catalog is a snapshot of the available levels.
// It is safe for concurrent use; Refresh swaps the snapshot atomically.
type Catalog struct {
	mu       sync.RWMutex
	dir      string
	lib      Library
	entries  map[string]Entry
	problems []Problem
}

// New scans the built-in levels, dir (if not empty) and lib (if not nil).
// Invalid descriptors are collected as problems; only I/O failures on the
// directory itself or the library are returned as errors.
func New(dir string, lib Library) (*Catalog, error) {
	c := &Catalog{dir: dir, lib: lib}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh rescans every level location.
// On error the previous snapshot is kept.
func (c *Catalog) Refresh() error {
	s := &scan{entries: make(map[string]Entry)}

	s.builtin()

	if c.dir != "" {
		if err := s.dir(c.dir); err != nil {
			return err
		}
	}

	if c.lib != nil {
		infos, err := c.lib.ListLevels()
		if err != nil {
			return fmt.Errorf("catalog: listing library: %w", err)
		}
		for _, info := range infos {
			s.entries[info.ID] = Entry{
				ID:     info.ID,
				Title:  info.Title,
				Origin: OriginLibrary,
				Format: info.Format,
			}
		}
	}

	c.mu.Lock()
	c.entries = s.entries
	c.problems = s.problems
	c.mu.Unlock()
	return nil
}

// scan collects one snapshot.
type scan struct {
	entries  map[string]Entry
	problems []Problem
}

func (sc *scan) builtin() {
	files, err := fs.Glob(builtinFS, "levels/*.json")
	if err != nil {
		sc.problems = append(sc.problems, Problem{Path: "levels", Err: err})
		return
	}
	for _, p := range files {
		data, err := builtinFS.ReadFile(p)
		if err != nil {
			sc.problems = append(sc.problems, Problem{Path: p, Err: err})
			continue
		}
		spec, err := level.Parse(data)
		if err != nil {
			sc.problems = append(sc.problems, Problem{Path: p, Err: err})
			continue
		}
		id := strings.TrimSuffix(path.Base(p), path.Ext(p))
		sc.entries[id] = Entry{
			ID:     id,
			Title:  titleOf(spec, id),
			Origin: OriginBuiltin,
			Path:   p,
			Format: level.FormatJSON,
		}
	}
}

// dir recursively picks up descriptors under root.
func (sc *scan) dir(root string) error {
	seen := make(map[string]string)

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(p) {
			return nil
		}

		spec, err := level.Load(p)
		if err != nil {
			sc.problems = append(sc.problems, Problem{Path: p, Err: err})
			return nil
		}

		id := fileID(p)
		if first, dup := seen[id]; dup {
			sc.problems = append(sc.problems, Problem{
				Path: p,
				Err:  fmt.Errorf("duplicate level ID %q (already defined by %s)", id, first),
			})
			return nil
		}
		seen[id] = p

		sc.entries[id] = Entry{
			ID:     id,
			Title:  titleOf(spec, id),
			Origin: OriginFile,
			Path:   p,
			Format: level.FormatFromPath(p),
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog: walking directory %s: %w", root, err)
	}
	return nil
}

// List returns all entries sorted by ID.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// Problems returns the descriptors skipped by the last scan.
func (c *Catalog) Problems() []Problem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Problem(nil), c.problems...)
}

// Lookup finds an entry by ID.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// Load reads and validates the level with the given ID.
// Every call goes back to the level's origin.
func (c *Catalog) Load(id string) (*level.Spec, error) {
	e, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	return c.load(e)
}

func (c *Catalog) load(e Entry) (*level.Spec, error) {
	switch e.Origin {
	case OriginBuiltin:
		data, err := builtinFS.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog: reading built-in %s: %w", e.ID, err)
		}
		return level.ParseFormat(data, e.Format)
	case OriginLibrary:
		if c.lib == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, e.ID)
		}
		rec, err := c.lib.LevelData(e.ID)
		if err != nil {
			return nil, err
		}
		return level.ParseFormat(rec.Data, rec.Format)
	default:
		return level.Load(e.Path)
	}
}

// Source returns a restartable source for a catalog ID.
func (c *Catalog) Source(id string) (*Source, error) {
	e, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
	}
	return &Source{cat: c, entry: e}, nil
}

// Resolve turns a CLI argument into a source. An existing file path wins over
// a catalog ID; an empty argument selects the default level.
func (c *Catalog) Resolve(arg string) (*Source, error) {
	if arg == "" {
		return c.Default(), nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		id := fileID(arg)
		return &Source{cat: c, entry: Entry{
			ID:     id,
			Title:  id,
			Origin: OriginFile,
			Path:   arg,
			Format: level.FormatFromPath(arg),
		}}, nil
	}
	return c.Source(arg)
}

// Default returns the built-in fallback level.
func (c *Catalog) Default() *Source {
	return &Source{cat: c, entry: Entry{
		ID:     DefaultID,
		Title:  DefaultID,
		Origin: OriginBuiltin,
		Path:   "levels/" + DefaultID + ".json",
		Format: level.FormatJSON,
	}}
}

// Source is a catalog level that can be loaded any number of times.
type Source struct {
	cat   *Catalog
	entry Entry
}

// ID returns the catalog ID.
func (s *Source) ID() string {
	return s.entry.ID
}

// Entry returns the catalog entry behind the source.
func (s *Source) Entry() Entry {
	return s.entry
}

// Load re-reads and validates the level.
func (s *Source) Load() (*level.Spec, error) {
	return s.cat.load(s.entry)
}

// FilePath returns the on-disk path of file levels, or "" for levels that
// cannot change underneath a running session.
func (s *Source) FilePath() string {
	if s.entry.Origin != OriginFile {
		return ""
	}
	return s.entry.Path
}

func titleOf(spec *level.Spec, id string) string {
	if name := spec.Name(); name != "" {
		return name
	}
	return id
}

func fileID(p string) string {
	base := filepath.Base(p)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isSupportedExtension(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, supported := range level.Extensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
