package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	projectFileSuffix = "_tasks.json"
	legacyFileName    = "tasks.json"
)

// Project is one database file inside the data directory. Name is the
// sanitized file-name form; DisplayName is what the UI shows.
type Project struct {
	Name        string
	DisplayName string
	Path        string
}

// NewProject lays out the file path for a display name; nothing is written.
func NewProject(displayName, dir string) Project {
	name := SanitizeProjectName(displayName)
	return Project{
		Name:        name,
		DisplayName: displayName,
		Path:        filepath.Join(dir, name+projectFileSuffix),
	}
}

// ProjectFromPath recognises a project database by its file name. The legacy
// tasks.json does not match; callers fall back to LegacyProject.
func ProjectFromPath(path string) (Project, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, projectFileSuffix) {
		return Project{}, false
	}
	name := strings.TrimSuffix(base, projectFileSuffix)
	return Project{
		Name:        name,
		DisplayName: strings.ReplaceAll(name, "_", " "),
		Path:        path,
	}, true
}

// SanitizeProjectName converts a display name to its file-name form:
// lower case, alphanumerics kept, every other run of characters collapsed
// to a single underscore.
func SanitizeProjectName(displayName string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(displayName) {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	return strings.Join(parts, "_")
}

// DiscoverProjects lists the project files in dir, sorted by display name.
// The legacy tasks.json is not included; see LegacyProject.
func DiscoverProjects(dir string) ([]Project, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var projects []Project
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if p, ok := ProjectFromPath(filepath.Join(dir, e.Name())); ok {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].DisplayName < projects[j].DisplayName
	})
	return projects, nil
}

// LegacyProject surfaces a bare tasks.json, the single-project layout that
// predates named project files.
func LegacyProject(dir string) (Project, bool) {
	path := filepath.Join(dir, legacyFileName)
	if _, err := os.Stat(path); err != nil {
		return Project{}, false
	}
	return Project{
		Name:        "default",
		DisplayName: "Default (Legacy)",
		Path:        path,
	}, true
}

// CreateProject writes an empty database file for a new project.
func CreateProject(displayName, dir string) (Project, error) {
	if strings.TrimSpace(displayName) == "" {
		return Project{}, fmt.Errorf("Project name cannot be empty")
	}
	p := NewProject(displayName, dir)
	if _, err := os.Stat(p.Path); err == nil {
		return Project{}, fmt.Errorf("Project '%s' already exists", displayName)
	}
	if err := (Store{Path: p.Path}).Save(NewDB()); err != nil {
		return Project{}, err
	}
	return p, nil
}

// MostRecentProject picks the project file, legacy included, with the
// newest modification time.
func MostRecentProject(dir string) (Project, bool) {
	projects, err := DiscoverProjects(dir)
	if err != nil {
		return Project{}, false
	}
	if legacy, ok := LegacyProject(dir); ok {
		projects = append(projects, legacy)
	}
	var (
		best     Project
		bestTime time.Time
		found    bool
	)
	for _, p := range projects {
		st, err := os.Stat(p.Path)
		if err != nil {
			continue
		}
		if !found || st.ModTime().After(bestTime) {
			best, bestTime, found = p, st.ModTime(), true
		}
	}
	return best, found
}
