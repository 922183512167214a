package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOP_TEST_DOTENV=loaded\n"), 0o644))
	t.Setenv("ENV_PATH", "")
	t.Setenv("BOP_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("BOP_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, true))
	assert.Equal(t, "loaded", os.Getenv("BOP_TEST_DOTENV"))

	missing := filepath.Join(dir, "missing.env")
	assert.NoError(t, LoadDotEnv(missing, false))
	assert.Error(t, LoadDotEnv(missing, true))
}

func TestFloat(t *testing.T) {
	t.Setenv("BOP_TEST_FLOAT", "")
	v, err := Float("BOP_TEST_FLOAT", 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)

	t.Setenv("BOP_TEST_FLOAT", "0.25")
	v, err = Float("BOP_TEST_FLOAT", 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	t.Setenv("BOP_TEST_FLOAT", "abc")
	_, err = Float("BOP_TEST_FLOAT", 0.1)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	t.Setenv("BOP_TEST_STRING", "")
	assert.Equal(t, "def", String("BOP_TEST_STRING", "def"))
	t.Setenv("BOP_TEST_STRING", "set")
	assert.Equal(t, "set", String("BOP_TEST_STRING", "def"))
}
