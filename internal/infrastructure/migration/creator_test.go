package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Providers Table")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_providers_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_providers_table.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Providers Table")

	_, err = os.Stat(mf.DownPath)
	require.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Providers Table", "add_providers_table"},
		{"add-payment-index", "add_payment_index"},
		{"trailing space ", "trailing_space"},
		{"Weird!!Chars##", "weirdchars"},
		{"v2 schema", "v2_schema"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Empty(t, migrations)

	_, err = CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err = ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.True(t, strings.HasSuffix(migrations[0], "_first"))

	// missing directory is not an error
	migrations, err = ListMigrations(dir + "/nope")
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
