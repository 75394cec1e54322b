package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	b, err := fs.ReadFile(Migrations, "00001_feed.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
	assert.Contains(t, string(b), "avatar_key")
}
