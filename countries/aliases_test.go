package countries

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DeclaredAlias(t *testing.T) {
	table := Default()

	assert.Equal(t,
		[]string{"England", "Scotland", "Wales", "Northern Ireland"},
		table.Resolve("United Kingdom"))
	assert.Equal(t,
		[]string{"Ireland", "Northern Ireland"},
		table.Resolve("Ireland"))
}

func TestResolve_UndeclaredNameIsIdentity(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"France"}, table.Resolve("France"))
	assert.Equal(t, []string{"Fraμce"}, table.Resolve("Fraμce"))
}

func TestResolve_IsCaseSensitive(t *testing.T) {
	table := Default()

	// Lookup is exact; a differently-cased name falls back to identity.
	assert.Equal(t, []string{"united kingdom"}, table.Resolve("united kingdom"))
}

func TestResolve_ReturnsACopy(t *testing.T) {
	table := Default()

	got := table.Resolve("United Kingdom")
	got[0] = "mutated"

	assert.Equal(t, "England", table.Resolve("United Kingdom")[0])
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := "United Kingdom:\n  - England\n  - Scotland\nCzechia:\n  - Czech Republic\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"England", "Scotland"}, table.Resolve("United Kingdom"))
	assert.Equal(t, []string{"Czech Republic"}, table.Resolve("Czechia"))
	assert.Equal(t, []string{"France"}, table.Resolve("France"))
}

func TestLoad_EmptyVariantListRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("France: []\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "France")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
