package service

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Entries Spec `yaml:"entries"`
}

// LoadSpec reads a YAML patch table from URL.
//
//	entries:
//	  - path: frontend/src/index.css
//	    rules:
//	      - pattern: 'content: "\?\?";'
//	        replacement: 'content: "👤";'
func LoadSpec(ctx context.Context, fs Storage, URL string) (Spec, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("table: read %s: %w", URL, err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes and validates a YAML patch table.
func ParseSpec(data []byte) (Spec, error) {
	var parsed tableFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("table: parse: %w", err)
	}
	for i, e := range parsed.Entries {
		if strings.TrimSpace(e.Path) == "" {
			return nil, fmt.Errorf("table: entry %d: path is required", i)
		}
		if len(e.Rules) == 0 {
			return nil, fmt.Errorf("table: entry %s: at least one rule is required", e.Path)
		}
	}
	return parsed.Entries, nil
}
