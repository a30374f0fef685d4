// Package specfile loads FormSpec definitions from YAML documents, so
// surveys can be authored declaratively without recompiling.
package specfile

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-surveyform/pkg/model"
)

// Parse decodes a single FormSpec from YAML and validates its structural
// invariants.
func Parse(data []byte) (model.FormSpec, error) {
	var spec model.FormSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return model.FormSpec{}, fmt.Errorf("specfile: decode yaml: %w", err)
	}
	if err := model.Validate(spec); err != nil {
		return model.FormSpec{}, fmt.Errorf("specfile: %w", err)
	}
	return spec, nil
}

// ParseReader decodes a FormSpec from a stream.
func ParseReader(r io.Reader) (model.FormSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("specfile: read: %w", err)
	}
	return Parse(data)
}

// LoadFile decodes a FormSpec from a file on disk.
func LoadFile(path string) (model.FormSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormSpec{}, fmt.Errorf("specfile: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS decodes every *.yaml and *.yml document under root (non-recursive)
// and returns the specs keyed by id. Duplicate ids are an error.
func LoadFS(fsys fs.FS, root string) (map[string]model.FormSpec, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("specfile: read dir %s: %w", root, err)
	}

	specs := make(map[string]model.FormSpec)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, root+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("specfile: read %s: %w", entry.Name(), err)
		}
		spec, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("specfile: %s: %w", entry.Name(), err)
		}
		if _, dup := specs[spec.ID]; dup {
			return nil, fmt.Errorf("specfile: duplicate spec id %q in %s", spec.ID, entry.Name())
		}
		specs[spec.ID] = spec
	}
	return specs, nil
}

func isYAML(name string) bool {
	for _, ext := range []string{".yaml", ".yml"} {
		if len(name) > len(ext) && name[len(name)-len(ext):] == ext {
			return true
		}
	}
	return false
}
