package postgres

import (
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AreEmbeddedInPairs(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrations_SeedPresentations(t *testing.T) {
	content, err := fs.ReadFile(migrations, "migrations/000001_create_presentations.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(content), "'Unidad'")
	assert.Contains(t, string(content), "'Docena'")
}

func TestURL(t *testing.T) {
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", URL("u", "p", "h", "5432", "d"))
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", DSN("u", "p", "h", "5432", "d"))
}

func TestURL_EscapesCredentials(t *testing.T) {
	raw := URL("app user", "p@ss/w:rd%1", "db.internal", "5432", "catalog")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	password, ok := parsed.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss/w:rd%1", password)
	assert.Equal(t, "app user", parsed.User.Username())
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/catalog", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
}
