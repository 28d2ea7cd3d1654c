package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	// Create a logger that writes to the test log
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestApply(t *testing.T) {
	ctx := setupTestLogger(t)

	s := New("/work/App")
	before := s.LastUpdated
	assert.Empty(t, s.MutatedProjectDirectory)

	s.Apply(ctx, MutatedDirectoryCreated{Path: "/work/App_mutated"})
	assert.Equal(t, "/work/App", s.ProjectDirectory)
	assert.Equal(t, "/work/App_mutated", s.MutatedProjectDirectory)
	assert.False(t, s.LastUpdated.Before(before))

	t.Run("later_changes_win", func(t *testing.T) {
		s.Apply(ctx, MutatedDirectoryCreated{Path: "/a"}, MutatedDirectoryCreated{Path: "/b"})
		assert.Equal(t, "/b", s.MutatedProjectDirectory)
	})

	t.Run("no_changes", func(t *testing.T) {
		stamp := s.LastUpdated
		s.Apply(ctx)
		assert.Equal(t, stamp, s.LastUpdated)
	})
}

func TestLoadAndSave(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("save_and_load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "state.yaml")

		s := New("/work/App")
		s.Apply(ctx, MutatedDirectoryCreated{Path: "/work/App_mutated"})
		require.NoError(t, WriteState(ctx, path, s))

		loaded, err := LoadState(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, s.ProjectDirectory, loaded.ProjectDirectory)
		assert.Equal(t, s.MutatedProjectDirectory, loaded.MutatedProjectDirectory)
		assert.True(t, s.LastUpdated.Equal(loaded.LastUpdated))

		// no temp files left behind
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("load_missing", func(t *testing.T) {
		_, err := LoadState(ctx, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading state file")
	})

	t.Run("load_without_project", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mutated_project_directory: /x\n"), 0o644))
		_, err := LoadState(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no project_directory")
	})
}
