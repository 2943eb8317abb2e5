package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"chainlex/internal/logging"
)

// LoadFile parses a single framework definition from a YAML file.
func LoadFile(path string) (Framework, error) {
	var f Framework
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("read framework %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse framework %s: %w", path, err)
	}
	if f.ID == "" {
		// Fall back to the file name so hand-written files stay minimal.
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// LoadDir loads every framework YAML file in dir into a fresh registry.
// When only is non-empty, frameworks with other ids are skipped.
// File order does not affect the result: files load in sorted name order
// and ids are globally unique regardless.
func LoadDir(dir string, only []string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read framework directory %s: %w", dir, err)
	}

	wanted := make(map[string]bool, len(only))
	for _, id := range only {
		wanted[id] = true
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	reg := New()
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		if len(wanted) > 0 && !wanted[f.ID] {
			logging.RegistryDebug("skipping framework %s (not selected)", f.ID)
			continue
		}
		if err := reg.AddFramework(f); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	logging.Registry("loaded %d frameworks from %s", len(reg.Frameworks()), dir)
	return reg, nil
}
