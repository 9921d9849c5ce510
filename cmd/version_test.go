package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fulmenhq/datavault/pkg/buildinfo"
)

func TestVersionCommand(t *testing.T) {
	out, _, err := execRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "data-vault "+buildinfo.BinaryVersion)
	assert.Contains(t, out, "Go: go")
}

func TestVersionCommand_JSON(t *testing.T) {
	out, _, err := execRoot(t, "version", "--json")
	require.NoError(t, err)

	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, buildinfo.BinaryVersion, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}

func TestVersionCommand_YAML(t *testing.T) {
	out, _, err := execRoot(t, "-o", "yaml", "version")
	require.NoError(t, err)

	var info buildinfo.Info
	require.NoError(t, yaml.Unmarshal([]byte(out), &info))
	assert.Equal(t, buildinfo.BinaryVersion, info.Version)
}
