package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/datavault/internal/assets"
	"github.com/fulmenhq/datavault/pkg/mode"
)

// ValidateDocument checks a YAML configuration document against the embedded
// configuration schema.
func ValidateDocument(configData []byte) error {
	schemaDoc, err := assets.SchemaDocument(assets.ConfigSchema.Path)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %v", assets.ConfigSchema.Name, err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(configData, &doc); err != nil {
		return fmt.Errorf("failed to parse config as YAML: %v", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schemaDoc), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %v", err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

// Validate performs the checks the schema cannot express: absolute import
// paths, parseable modes and exclude patterns, and usable service URLs.
func (c *Config) Validate() error {
	if len(c.StorageRoots) == 0 {
		return errors.New("at least one storage root must be configured")
	}

	var problems []string
	for _, name := range c.Names() {
		root := c.StorageRoots[name]
		area := root.ImportArea
		if area.Path == "" || !filepath.IsAbs(area.Path) {
			problems = append(problems, fmt.Sprintf("%s: importArea.path must be an absolute path, got %q", name, area.Path))
		}
		if err := mode.Validate(area.FileMode); err != nil {
			problems = append(problems, fmt.Sprintf("%s: importArea.fileMode: %v", name, err))
		}
		if err := mode.Validate(area.DirectoryMode); err != nil {
			problems = append(problems, fmt.Sprintf("%s: importArea.directoryMode: %v", name, err))
		}
		for _, p := range area.Exclude {
			if !doublestar.ValidatePattern(p) {
				problems = append(problems, fmt.Sprintf("%s: importArea.exclude: invalid pattern %q", name, p))
			}
		}

		svc := root.DataVaultService
		if u, err := url.Parse(svc.URL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("%s: dataVaultService.url must be an absolute URL, got %q", name, svc.URL))
		}
		if svc.Timeout < 0 {
			problems = append(problems, fmt.Sprintf("%s: dataVaultService.timeout must not be negative", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}
