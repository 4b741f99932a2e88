package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	def := Default()
	require.Equal(t, uint32(65536), def.MaxChunkSize)
	require.Equal(t, 4096, def.DictionaryScanThreshold)
	require.False(t, def.MVCCEnabled)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	stubs := gostub.Stub(&global, Default())
	defer stubs.Reset()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, Default(), Get())
}

func TestLoad_TOMLFileOverridesDefaults(t *testing.T) {
	stubs := gostub.Stub(&global, Default())
	defer stubs.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "hyrise.toml")
	contents := "max_chunk_size = 128\nmvcc_enabled = true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(128), cfg.MaxChunkSize)
	require.True(t, cfg.MVCCEnabled)
	require.Equal(t, Default().DictionaryScanThreshold, cfg.DictionaryScanThreshold)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	stubs := gostub.Stub(&global, Default())
	defer stubs.Reset()

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}
