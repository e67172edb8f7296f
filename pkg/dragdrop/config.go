package dragdrop

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a JSON or YAML configuration file. Keys absent from the
// file keep their default values.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("dragdrop: read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// LoadConfigFS is LoadConfig over an fs.FS.
func LoadConfigFS(fsys fs.FS, path string) (Options, error) {
	if fsys == nil {
		return Options{}, fmt.Errorf("dragdrop: missing filesystem for %s", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Options{}, fmt.Errorf("dragdrop: read config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig decodes data as JSON, falling back to YAML, and returns the
// normalised and validated options. source is only used in error messages.
func ParseConfig(data []byte, source string) (Options, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Options{}, fmt.Errorf("dragdrop: config %s is empty", source)
	}

	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		opts = DefaultOptions()
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("dragdrop: parse config %s: invalid JSON or YAML", source)
		}
	}

	opts = NewOptions(WithOptions(opts))
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("dragdrop: config %s: %w", source, err)
	}
	return opts, nil
}
