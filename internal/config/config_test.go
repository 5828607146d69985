package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
pages:
  overrides:
    GeneralUIColor:
      name: UIColor
      section: Extensions
clean:
  replacements:
    - pattern: '&copy; 2017'
      replacement: '&copy; 2025'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "UIColor", cfg.Pages.Overrides["GeneralUIColor"].Name)
	require.Equal(t, "Extensions", cfg.Pages.Overrides["GeneralUIColor"].Section)
	require.Equal(t, []string{"Classes.html", "Extensions.html"}, cfg.Pages.Summary)
	require.Len(t, cfg.Clean.Replacements, 1)
	require.False(t, cfg.Clean.KeepTodos)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default().Pages.Summary, cfg.Pages.Summary)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCPATCH_GUIDE", "ARCHITECTURE.md")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
guides:
  - markdown: ${DOCPATCH_GUIDE}
    page: Architecture.html
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Guides, 1)
	require.Equal(t, "ARCHITECTURE.md", cfg.Guides[0].Markdown)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Audio", cfg.Pages.Overrides["AudioSingletons"].Name)
}
