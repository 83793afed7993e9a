package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// loadTOMLFile reads a TOML file into environment-style keys. Tables are
// flattened with "_" and names upper-cased, so [s3] bucket becomes S3_BUCKET.
func loadTOMLFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := map[string]string{}
	flatten(raw, "", out)
	return out, nil
}

func flatten(m map[string]any, prefix string, out map[string]string) {
	for key, value := range m {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(v, name, out)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			out[name] = strings.Join(parts, ",")
		default:
			out[name] = fmt.Sprint(v)
		}
	}
}
