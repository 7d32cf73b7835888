package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "WHEELNORM_"

// Load builds the configuration from defaults, the file at path and
// WHEELNORM_* environment variables, then validates it. Files ending in
// .yaml or .yml are read as YAML, anything else as TOML. An empty path
// skips the file layer.
func Load(path string) (*Config, error) {
	var file map[string]any
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		file, err = parseFile(path, data)
		if err != nil {
			return nil, err
		}
	}

	return build(path, file, NewEnvLoader(EnvPrefix))
}

// LoadFromReader builds the configuration from defaults and TOML read
// from r. The environment is not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	file, err := parse("<reader>", data)
	if err != nil {
		return nil, err
	}
	return build("<reader>", file, nil)
}

// build merges the file layer and then the environment layer over the
// defaults, decodes and validates. env may be nil.
func build(source string, file map[string]any, env *EnvLoader) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	merged = DeepMerge(merged, file)
	if env != nil {
		overlay, err := env.Load(merged)
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, overlay)
	}

	cfg, err := decode(source, merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// parseFile parses data in the format selected by the extension of path.
func parseFile(path string, data []byte) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		return parse(path, data)
	}
}

// parseYAML parses YAML data into a map. Keys use the same names as the
// TOML form.
func parseYAML(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}

// parse parses TOML data into a map.
func parse(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, newParseError(source, err, true)
	}
	return m, nil
}

// decode converts the merged map into a Config, rejecting unknown keys.
func decode(source string, m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}

	cfg := &Config{}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		// Positions refer to the merged document, not to the file.
		return nil, newParseError(source, err, false)
	}
	return cfg, nil
}

// toMap converts a Config into its nested map form.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

func newParseError(source string, err error, withPosition bool) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if withPosition && errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		keys := make([]string, 0, len(strictErr.Errors))
		for _, e := range strictErr.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		pe.Message = "unknown setting " + strings.Join(keys, ", ")
	}
	return pe
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
		} else {
			dst[key] = srcVal
		}
	}

	return dst
}

// lookupPath returns the value at a dotted path of a nested map.
func lookupPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := m
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}
