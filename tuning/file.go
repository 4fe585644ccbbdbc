package tuning

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDir   = "blockduel"
	fileName = "tuning.yaml"
)

// DefaultPath returns the tuning file location under the user's config directory.
func DefaultPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appDir, fileName), nil
}

// FileStore keeps Values in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path, or at DefaultPath when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("tuning: locate config dir: %w", err)
		}
		path = p
	}
	return &FileStore{Path: path}, nil
}

// Load reads the file. A missing file yields Defaults and no error. Unreadable YAML yields
// Defaults and the parse error; a malformed field keeps its default while the rest of the file
// still applies, and the field errors are returned joined.
func (s *FileStore) Load() (Values, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("tuning: read %s: %w", s.Path, err)
	}
	return Parse(data)
}

// Save writes v, creating the parent directory if needed.
func (s *FileStore) Save(v Values) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("tuning: create dir: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("tuning: encode: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("tuning: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("tuning: replace %s: %w", s.Path, err)
	}
	return nil
}

// Parse decodes YAML into Values field by field on top of Defaults.
func Parse(data []byte) (Values, error) {
	v := Defaults()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return v, fmt.Errorf("tuning: parse: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return v, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return v, fmt.Errorf("tuning: parse: top level is not a mapping")
	}

	fields := map[string]any{
		"skill_level":  &v.SkillLevel,
		"wins":         &v.Wins,
		"losses":       &v.Losses,
		"das_delay_ms": &v.DASDelayMS,
		"arr_speed_ms": &v.ARRSpeedMS,
	}
	weights := map[string]any{
		"hole":           &v.Weights.Hole,
		"height":         &v.Weights.Height,
		"bumpiness":      &v.Weights.Bumpiness,
		"line_clear":     &v.Weights.LineClear,
		"aggression":     &v.Weights.Aggression,
		"planning_depth": &v.Weights.PlanningDepth,
	}

	var errs []error
	eachPair(root, func(key string, value *yaml.Node) {
		if key == "weights" {
			if value.Kind != yaml.MappingNode {
				errs = append(errs, fmt.Errorf("tuning: weights: line %d: not a mapping", value.Line))
				return
			}
			eachPair(value, func(key string, value *yaml.Node) {
				errs = append(errs, decodeField("weights."+key, weights[key], value))
			})
			return
		}
		errs = append(errs, decodeField(key, fields[key], value))
	})

	return v.Normalize(), errors.Join(errs...)
}

func eachPair(m *yaml.Node, fn func(key string, value *yaml.Node)) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		fn(m.Content[i].Value, m.Content[i+1])
	}
}

// decodeField decodes value into dst, leaving dst untouched on failure. Unknown keys are ignored.
func decodeField(name string, dst any, value *yaml.Node) error {
	if dst == nil {
		return nil
	}
	switch p := dst.(type) {
	case *float64:
		var f float64
		if err := value.Decode(&f); err != nil {
			return fmt.Errorf("tuning: %s: %w", name, err)
		}
		*p = f
	case *int:
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("tuning: %s: %w", name, err)
		}
		*p = n
	}
	return nil
}
