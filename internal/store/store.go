package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"strata-cli/internal/model"
)

// maxDepth bounds hierarchy walks. Task trees are shallow by construction;
// hitting the bound means the file holds a parent cycle.
const maxDepth = 64

// DB is one project's task database. The whole file is rewritten on every
// mutation; there is no partial update path.
type DB struct {
	Tasks     []model.Task     `json:"tasks"`
	Templates []model.Template `json:"templates"`
}

// Store binds a database to its file on disk.
type Store struct {
	Path string
}

// NewDB returns an empty database with non-nil slices, so it marshals as
// {"tasks": [], "templates": []}.
func NewDB() *DB {
	return &DB{Tasks: []model.Task{}, Templates: []model.Template{}}
}

// Dir is the data directory holding the database file.
func (s Store) Dir() string {
	return filepath.Dir(filepath.Clean(s.Path))
}

// Load reads the database file. A missing file yields an empty database.
// An unreadable or corrupt file is reported on stderr and also yields an
// empty database so a damaged file never locks the tool out.
func (s Store) Load() *DB {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error reading DB, starting fresh: %v\n", err)
		}
		return NewDB()
	}
	db := NewDB()
	if err := json.Unmarshal(raw, db); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing DB, starting fresh: %v\n", err)
		return NewDB()
	}
	normalize(db)
	return db
}

// normalize repairs loaded data: nil slices become empty (so they marshal
// as [] rather than null) and the legacy design_files field folds into
// Artifacts.
func normalize(db *DB) {
	if db.Tasks == nil {
		db.Tasks = []model.Task{}
	}
	if db.Templates == nil {
		db.Templates = []model.Template{}
	}
	for i := range db.Tasks {
		t := &db.Tasks[i]
		if t.Tags == nil {
			t.Tags = []string{}
		}
		if len(t.Artifacts) == 0 && len(t.LegacyDesignFiles) > 0 {
			t.Artifacts = t.LegacyDesignFiles
		}
		t.LegacyDesignFiles = nil
		if t.Artifacts == nil {
			t.Artifacts = []string{}
		}
	}
	for i := range db.Templates {
		if db.Templates[i].Tags == nil {
			db.Templates[i].Tags = []string{}
		}
	}
}

// Save writes the database atomically: temp file in the same directory,
// then rename over the target.
func (s Store) Save(db *DB) error {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path)
}

// NextID is one past the highest assigned id. IDs of deleted tasks may be
// reused once no higher id remains; ids are unique within one file only.
func (db *DB) NextID() uint64 {
	var max uint64
	for i := range db.Tasks {
		if db.Tasks[i].ID > max {
			max = db.Tasks[i].ID
		}
	}
	return max + 1
}

// Find returns the task with the given id, or nil.
func (db *DB) Find(id uint64) *model.Task {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i]
		}
	}
	return nil
}

// RemoveIDs deletes the given tasks and clears parent pointers of any
// survivors that referenced them.
func (db *DB) RemoveIDs(ids map[uint64]bool) {
	kept := db.Tasks[:0]
	for _, t := range db.Tasks {
		if !ids[t.ID] {
			kept = append(kept, t)
		}
	}
	db.Tasks = kept
	for i := range db.Tasks {
		t := &db.Tasks[i]
		if t.Parent != nil && ids[*t.Parent] {
			t.Parent = nil
		}
	}
}

// Template returns the named template, or nil.
func (db *DB) Template(name string) *model.Template {
	for i := range db.Templates {
		if db.Templates[i].Name == name {
			return &db.Templates[i]
		}
	}
	return nil
}

// ChildrenMap maps each parent id to its children's ids, sorted.
func (db *DB) ChildrenMap() map[uint64][]uint64 {
	m := map[uint64][]uint64{}
	for i := range db.Tasks {
		if p := db.Tasks[i].Parent; p != nil {
			m[*p] = append(m[*p], db.Tasks[i].ID)
		}
	}
	for _, ids := range m {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return m
}

// Descendants collects every task under root, breadth-first. The walk stops
// at maxDepth and reports the breach on stderr; a well-formed file never
// gets near it.
func (db *DB) Descendants(root uint64) []uint64 {
	children := db.ChildrenMap()
	seen := map[uint64]bool{root: true}
	var out []uint64

	frontier := []uint64{root}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= maxDepth {
			fmt.Fprintf(os.Stderr, "warning: hierarchy under task %d exceeds %d levels; data may hold a cycle\n", root, maxDepth)
			break
		}
		var next []uint64
		for _, id := range frontier {
			for _, c := range children[id] {
				if seen[c] {
					continue
				}
				seen[c] = true
				out = append(out, c)
				next = append(next, c)
			}
		}
		frontier = next
	}
	return out
}

// Ancestors walks parent pointers from id upward, closest first. The walk
// is bounded like Descendants.
func (db *DB) Ancestors(id uint64) []uint64 {
	var chain []uint64
	for hops := 0; hops < maxDepth; hops++ {
		t := db.Find(id)
		if t == nil || t.Parent == nil {
			return chain
		}
		chain = append(chain, *t.Parent)
		id = *t.Parent
	}
	fmt.Fprintf(os.Stderr, "warning: parent chain above task %d exceeds %d levels; data may hold a cycle\n", id, maxDepth)
	return chain
}

// WouldCycle reports whether re-parenting child under parent would create a
// cycle, i.e. parent is child itself or one of its descendants.
func (db *DB) WouldCycle(child, parent uint64) bool {
	if child == parent {
		return true
	}
	for _, id := range db.Descendants(child) {
		if id == parent {
			return true
		}
	}
	return false
}

// ResolveIdentifier turns a task reference, numeric id or exact title
// (case-insensitive), into an id. Ambiguous titles list the candidates.
func (db *DB) ResolveIdentifier(identifier string) (uint64, error) {
	if id, err := strconv.ParseUint(strings.TrimSpace(identifier), 10, 64); err == nil {
		if db.Find(id) != nil {
			return id, nil
		}
		return 0, fmt.Errorf("Task with ID %d not found", id)
	}

	lower := strings.ToLower(identifier)
	var matches []*model.Task
	for i := range db.Tasks {
		if strings.ToLower(db.Tasks[i].Title) == lower {
			matches = append(matches, &db.Tasks[i])
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("No task found with name '%s'", identifier)
	case 1:
		return matches[0].ID, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Multiple tasks found with name '%s':\n", identifier)
	for _, t := range matches {
		fmt.Fprintf(&b, "  ID %d: %s (%s)", t.ID, t.Title, t.Kind.Display())
		if t.Project != nil {
			fmt.Fprintf(&b, " [project: %s]", *t.Project)
		}
		b.WriteString("\n")
	}
	b.WriteString("Please use the specific ID instead.")
	return 0, errors.New(b.String())
}

// Truncate limits s to width runes, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}
