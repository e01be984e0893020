package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Store keeps datasource credentials in a YAML file outside committed
// configuration. Values are looked up through ${name} references so the
// committed config never carries secrets.
type Store struct {
	path      string
	variables map[string]string
}

// NewStore creates a store backed by the given YAML file. The file does not
// need to exist yet; it is created on the first Save.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		variables: make(map[string]string),
	}
}

// Load reads the variables file into memory. A missing file is not an
// error; the store starts empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("credentials: read %s: %w", s.path, err)
	}

	variables := make(map[string]string)
	if err := yaml.Unmarshal(data, &variables); err != nil {
		return fmt.Errorf("credentials: parse %s: %w", s.path, err)
	}
	s.variables = variables
	return nil
}

// Save sets a variable and writes the whole file back. The file is created
// 0600 since it holds secrets.
func (s *Store) Save(name, value string) error {
	s.variables[name] = value

	data, err := yaml.Marshal(s.variables)
	if err != nil {
		return fmt.Errorf("credentials: marshal: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("credentials: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("credentials: write %s: %w", s.path, err)
	}
	return nil
}

// Get returns a stored variable.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.variables[name]
	return v, ok
}

// Names returns the stored variable names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.variables))
	for name := range s.variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
