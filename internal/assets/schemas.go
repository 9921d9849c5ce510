package assets

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaInfo holds schema metadata.
type SchemaInfo struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Path    string `json:"path" yaml:"path"`
	Draft   string `json:"draft" yaml:"draft"`
}

// GetSchemaNames returns the registered schemas that are actually embedded.
func GetSchemaNames() []SchemaInfo {
	var infos []SchemaInfo
	for _, a := range Registry {
		if _, ok := GetSchema(a.Path); ok {
			infos = append(infos, SchemaInfo{Name: a.Name, Version: a.Version, Path: a.Path, Draft: detectDraft(a.Path)})
		}
	}
	return infos
}

// SchemaDocument decodes an embedded YAML or JSON schema into a generic
// document suitable for gojsonschema.NewGoLoader.
func SchemaDocument(relPath string) (interface{}, error) {
	data, ok := GetSchema(relPath)
	if !ok {
		return nil, fmt.Errorf("schema %s is not embedded", relPath)
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		if jerr := json.Unmarshal(data, &doc); jerr != nil {
			return nil, fmt.Errorf("schema %s: %w", relPath, err)
		}
	}
	return doc, nil
}

// detectDraft heuristically detects draft from schema bytes via $schema key.
func detectDraft(path string) string {
	doc, err := SchemaDocument(path)
	if err != nil {
		return "Unknown (07/2020-12 supported)"
	}
	if m, ok := doc.(map[string]interface{}); ok {
		if v, ok := m["$schema"].(string); ok {
			if strings.Contains(v, "draft-07") {
				return "Draft-07"
			}
			if strings.Contains(v, "2020-12") {
				return "Draft-2020-12"
			}
		}
	}
	return "Unknown (07/2020-12 supported)"
}
