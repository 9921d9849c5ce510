package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fulmenhq/datavault/internal/vault"
)

const serviceURL = "http://vault.test:20305"

// execRoot runs a fresh command tree and returns what it wrote.
func execRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand()
	registerSubcommands(cmd)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// testEnv is a configuration file with one storage root whose import area
// lives in a temp dir.
type testEnv struct {
	configFile string
	importRoot string
	base       string
}

func newTestEnv(t *testing.T, fileMode, dirMode string) testEnv {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	env := testEnv{
		configFile: filepath.Join(base, "config.yml"),
		importRoot: filepath.Join(base, "import"),
		base:       base,
	}
	require.NoError(t, os.MkdirAll(env.importRoot, 0o755))

	content := fmt.Sprintf(`storageRoots:
  default:
    dataVaultService:
      url: %s/
    importArea:
      path: %s
      fileMode: %q
      directoryMode: %q
      exclude: ["**/.DS_Store"]
`, serviceURL, env.importRoot, fileMode, dirMode)
	require.NoError(t, os.WriteFile(env.configFile, []byte(content), 0o600))
	return env
}

// useMockService routes service calls of the command tree to a mock.
func useMockService(t *testing.T) *vault.MockHTTPDoer {
	t.Helper()
	mock := vault.NewMockHTTPDoer()
	orig := newHTTPDoer
	newHTTPDoer = func(time.Duration) vault.HTTPDoer { return mock }
	t.Cleanup(func() { newHTTPDoer = orig })
	return mock
}
