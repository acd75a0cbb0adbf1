package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".partiqlparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aggregate_functions: [count, stddev]\nverbose: true\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"count", "stddev"}, cfg.AggregateFunctions)
	require.True(t, cfg.Verbose)
}

func TestFindConfigWalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".partiqlparse.yaml"), []byte("verbose: true\n"), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindConfig(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ".partiqlparse.yaml"), found)
}

func TestFindConfigReturnsErrConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := FindConfig(dir)
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadConfigReportsErrConfigNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	require.ErrorIs(t, err, ErrConfigNotFound)
	require.Nil(t, cfg)
}
