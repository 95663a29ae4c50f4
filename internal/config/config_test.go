package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  addr: ":9090"
  cors-origins:
    - "http://localhost:3000"

postgres:
  host: "db.local"
  db: "tracker"
  username: "svc"
  password: "from-file"

tracing:
  disabled: true
`

func writeConfig(t *testing.T) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testYAML), 0o600))
	t.Setenv(configFileEnvKey, file)
}

func Test_OnNew_ShouldParseAllSections(t *testing.T) {
	writeConfig(t)

	conf, err := New()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", conf.Server().Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, conf.Server().Origins())
	assert.Equal(t, "db.local", conf.Postgres().Host())
	assert.Equal(t, "tracker", conf.Postgres().Database())
	assert.Equal(t, "svc", conf.Postgres().Username())
	assert.Equal(t, "from-file", conf.Postgres().Password())
	assert.True(t, conf.Tracing().Disabled())
	assert.Equal(t, "expense-tracker", conf.Tracing().ServiceName())
}

func Test_OnNewWithMissingFile_ShouldFail(t *testing.T) {
	t.Setenv(configFileEnvKey, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := New()

	assert.Error(t, err)
}

func Test_OnPasswordEnvOverride_ShouldWinOverFile(t *testing.T) {
	writeConfig(t)
	t.Setenv(postgresPasswordEnvKey, "from-env")

	conf, err := New()

	assert.NoError(t, err)
	assert.Equal(t, "from-env", conf.Postgres().Password())
}
