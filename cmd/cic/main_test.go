package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily/standard"
)

func TestParseStandardKnownNames(t *testing.T) {
	cases := map[string]standard.Standard{
		"":      standard.C17,
		"c89":   standard.C89,
		"C99":   standard.C99,
		"c11":   standard.C11,
		"c17":   standard.C17,
		"c23":   standard.C23,
		"k&r":   standard.KandR,
		"kandr": standard.KandR,
	}
	for name, want := range cases {
		got, err := parseStandard(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParseStandardUnknownNameErrors(t *testing.T) {
	_, err := parseStandard("c++20")
	assert.Error(t, err)
}

func TestLoadConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("std: c99\ndump: ast\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "c99", cfg.Standard)
	assert.Equal(t, "ast", cfg.Dump)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
