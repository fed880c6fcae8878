package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// writeFile creates parent directories as needed and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleCompose = `name: Demo-Stack
services:
  web:
    image: nginx
  db:
    image: postgres
`

// TestResolve_Explicit verifies an explicit directory is used as-is, with
// its compose file detected when present.
func TestResolve_Explicit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "compose.yaml"), sampleCompose)

	p, err := Resolve(root, "/somewhere/else")
	require.NoError(t, err)
	assert.Equal(t, root, p.Root)
	assert.Equal(t, filepath.Join(root, "compose.yaml"), p.ComposeFile)
	assert.False(t, p.Discovered)
}

// TestResolve_ExplicitWithoutComposeFile verifies an explicit directory is
// accepted even when the compose file is missing, leaving that error to
// the compose tool.
func TestResolve_ExplicitWithoutComposeFile(t *testing.T) {
	root := t.TempDir()

	p, err := Resolve(root, "")
	require.NoError(t, err)
	assert.Equal(t, root, p.Root)
	assert.Empty(t, p.ComposeFile)
}

// TestResolve_ExplicitInvalid verifies missing directories and plain files
// are rejected with ExitProjectNotFound.
func TestResolve_ExplicitInvalid(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "compose.yaml")
	writeFile(t, file, sampleCompose)

	for name, dir := range map[string]string{
		"missing": filepath.Join(root, "nope"),
		"file":    file,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Resolve(dir, "")
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitProjectNotFound, cliErr.Code)
		})
	}
}

// TestDiscover_WalksUp verifies discovery from a nested directory finds the
// compose file in an ancestor.
func TestDiscover_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docker-compose.yml"), sampleCompose)
	nested := filepath.Join(root, "src-tauri", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := Resolve("", nested)
	require.NoError(t, err)
	assert.Equal(t, root, p.Root)
	assert.Equal(t, filepath.Join(root, "docker-compose.yml"), p.ComposeFile)
	assert.True(t, p.Discovered)
}

// TestDiscover_PrefersComposeYAML verifies the lookup order when several
// default file names exist.
func TestDiscover_PrefersComposeYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docker-compose.yml"), sampleCompose)
	writeFile(t, filepath.Join(root, "compose.yaml"), sampleCompose)

	p := Discover(root)
	assert.Equal(t, filepath.Join(root, "compose.yaml"), p.ComposeFile)
}

// TestDiscover_Devcontainer verifies that a devcontainer.json referencing a
// compose file makes that file's directory the project root.
func TestDiscover_Devcontainer(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".devcontainer", "devcontainer.json"), `{
	// JSONC comments are allowed
	"name": "demo",
	"dockerComposeFile": ["docker-compose.yml", "missing.yml",],
	"service": "web",
}`)
	writeFile(t, filepath.Join(root, ".devcontainer", "docker-compose.yml"), sampleCompose)

	p := Discover(root)
	assert.Equal(t, filepath.Join(root, ".devcontainer"), p.Root)
	assert.Equal(t, filepath.Join(root, ".devcontainer", "docker-compose.yml"), p.ComposeFile)
}

// TestDiscover_DevcontainerNonDefaultName verifies that a compose file the
// lifecycle commands cannot pick up without -f is ignored and the walk
// continues upward.
func TestDiscover_DevcontainerNonDefaultName(t *testing.T) {
	top := t.TempDir()
	writeFile(t, filepath.Join(top, "compose.yaml"), sampleCompose)
	app := filepath.Join(top, "app")
	writeFile(t, filepath.Join(app, ".devcontainer", "devcontainer.json"),
		`{"dockerComposeFile": "compose.dev.yml"}`)
	writeFile(t, filepath.Join(app, ".devcontainer", "compose.dev.yml"), sampleCompose)

	p := Discover(app)
	assert.Equal(t, top, p.Root)
	assert.Equal(t, filepath.Join(top, "compose.yaml"), p.ComposeFile)
	assert.True(t, p.Discovered)
}

// TestDiscover_DevcontainerNonDefaultNameOnly verifies that nothing is
// discovered when the only candidate has a non-default name.
func TestDiscover_DevcontainerNonDefaultNameOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".devcontainer", "devcontainer.json"),
		`{"dockerComposeFile": ["compose.dev.yml"]}`)
	writeFile(t, filepath.Join(root, ".devcontainer", "compose.dev.yml"), sampleCompose)

	p := Discover(root)
	assert.Equal(t, root, p.Root)
	assert.Empty(t, p.ComposeFile)
	assert.False(t, p.Discovered)
}

// TestDiscover_DevcontainerPrefersToolDefault verifies the reported compose
// file is the one the compose tool would pick in the referenced directory.
func TestDiscover_DevcontainerPrefersToolDefault(t *testing.T) {
	root := t.TempDir()
	dc := filepath.Join(root, ".devcontainer")
	writeFile(t, filepath.Join(dc, "devcontainer.json"), `{"dockerComposeFile": "docker-compose.yml"}`)
	writeFile(t, filepath.Join(dc, "docker-compose.yml"), sampleCompose)
	writeFile(t, filepath.Join(dc, "compose.yaml"), sampleCompose)

	p := Discover(root)
	assert.Equal(t, dc, p.Root)
	assert.Equal(t, filepath.Join(dc, "compose.yaml"), p.ComposeFile)
}

// TestProject_Name covers the explicit compose name and the directory
// fallback.
func TestProject_Name(t *testing.T) {
	t.Run("from compose file", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "compose.yaml"), sampleCompose)
		assert.Equal(t, "Demo-Stack", Discover(root).Name())
	})

	t.Run("from directory", func(t *testing.T) {
		p := &Project{Root: "/home/me/Globo Front.main"}
		assert.Equal(t, "globofrontmain", p.Name())
	})

	t.Run("from parsed compose file", func(t *testing.T) {
		p := &Project{Root: "/srv/app", ComposeFile: "/srv/app/compose.yaml"}
		assert.Equal(t, "named", p.NameFor(&ComposeFile{Name: "named"}))
		assert.Equal(t, "app", p.NameFor(&ComposeFile{}))
		assert.Equal(t, "app", p.NameFor(nil))
	})
}

// TestNormalizeName verifies the compose project name rules.
func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"demo", "demo"},
		{"My_App-2", "my_app-2"},
		{"with space.dots", "withspacedots"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

// TestLoadComposeFile verifies service names are extracted and sorted.
func TestLoadComposeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compose.yaml")
	writeFile(t, path, sampleCompose)

	cf, err := LoadComposeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Demo-Stack", cf.Name)
	assert.Equal(t, []string{"db", "web"}, cf.ServiceNames())
}

// TestLoadComposeFile_Errors covers missing and malformed files.
func TestLoadComposeFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadComposeFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "services: [unclosed\n")
	_, err = LoadComposeFile(bad)
	assert.Error(t, err)
}

// TestDevcontainer_ComposeFiles verifies both string and array forms.
func TestDevcontainer_ComposeFiles(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{"string", "docker-compose.yml", []string{"docker-compose.yml"}},
		{"array", []interface{}{"a.yml", 3, "b.yml"}, []string{"a.yml", "b.yml"}},
		{"empty string", "", nil},
		{"absent", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Devcontainer{DockerComposeFile: tt.value}
			assert.Equal(t, tt.want, d.ComposeFiles())
		})
	}
}
