package assets

// Registry lists embedded schemas available at runtime.
// Update this when adding/removing schemas.

type AssetInfo struct {
	Name    string // e.g., data-vault-config
	Version string // e.g., v1
	Path    string // relative to the schemas root
}

// ConfigSchema is the schema the configuration file is validated against.
var ConfigSchema = AssetInfo{
	Name:    "data-vault-config",
	Version: "v1",
	Path:    "config/v1/data-vault-config.yaml",
}

var Registry = []AssetInfo{
	ConfigSchema,
}
