package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_YML(t *testing.T) {
	dir := t.TempDir()
	content := "outputDir: out\ncolumns: [amr, gold]\nworkers: 4\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amrfix.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, []string{"amr", "gold"}, cfg.Columns)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Verbose)
	assert.Nil(t, cfg.NormalizeUnicode)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amrfix.yaml"), []byte("outputDir: [oops"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
