package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
owner: Box
workers: 2
time_format: "%Y"
color: never
classes:
  - name: Box
    type_members: [Elem]
    methods: [fetch]
  - name: Widget
aliases:
  - name: Crate
    class: Box
`

func TestParseConfig(t *testing.T) {
	t.Parallel()
	cfg, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "Box", cfg.Owner)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "%Y", cfg.TimeFormat)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, []ClassDecl{
		{Name: "Box", TypeMembers: []string{"Elem"}, Methods: []string{"fetch"}},
		{Name: "Widget"},
	}, cfg.Classes)
	assert.Equal(t, []AliasDecl{{Name: "Crate", Class: "Box"}}, cfg.Aliases)
}

func TestParseEmptyConfig(t *testing.T) {
	t.Parallel()
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		src, msg string
	}{
		{"workers: 0", "workers must be at least 1"},
		{"color: sometimes", "color must be one of"},
		{"classes: [{name: A}, {name: A}]", "class A declared twice"},
		{"classes: [{type_members: [X]}]", "class without a name"},
		{"aliases: [{name: A}]", "alias needs both"},
		{"classes: [{name: A}]\naliases: [{name: A, class: A}]", "collides"},
		{"unknown_key: 1", "parse config"},
	}
	for _, tc := range cases {
		_, err := Parse(strings.NewReader(tc.src))
		require.Error(t, err, tc.src)
		assert.Contains(t, err.Error(), tc.msg)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sigtype.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Box", cfg.Owner)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "open config")
}
