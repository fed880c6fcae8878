package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// ComposeFileNames are the default compose file names, in the order the
// compose tools look them up.
var ComposeFileNames = []string{
	"compose.yaml",
	"compose.yml",
	"docker-compose.yaml",
	"docker-compose.yml",
}

// Project is a resolved compose project root.
type Project struct {
	// Root is the absolute directory lifecycle commands run in.
	Root string

	// ComposeFile is the absolute path of the compose file found in Root.
	// Empty when none was found; the compose tool will then report the
	// missing file itself.
	ComposeFile string

	// Discovered is true when Root was found by walking up the tree rather
	// than configured explicitly.
	Discovered bool
}

// Resolve returns the project for an explicit root, or discovers one
// starting at startDir when explicit is empty.
//
// An explicit root must be an existing directory; otherwise a CLIError with
// ExitProjectNotFound is returned. Discovery never fails: when nothing is
// found, startDir itself is used.
func Resolve(explicit, startDir string) (*Project, error) {
	if explicit != "" {
		root, err := filepath.Abs(explicit)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitProjectNotFound,
				fmt.Sprintf("invalid project directory %q", explicit), err)
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitProjectNotFound,
				fmt.Sprintf("project directory %q not accessible", root), err)
		}
		if !info.IsDir() {
			return nil, model.NewCLIError(model.ExitProjectNotFound,
				fmt.Sprintf("project directory %q is not a directory", root))
		}
		return &Project{Root: root, ComposeFile: findComposeFile(root)}, nil
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory %q: %w", startDir, err)
	}
	return Discover(start), nil
}

// Discover walks from dir up to the filesystem root and returns the first
// directory that holds a compose file, either directly or through
// .devcontainer/devcontainer.json. If none is found, dir is returned with
// an empty ComposeFile.
func Discover(dir string) *Project {
	for current := dir; ; {
		if file := findComposeFile(current); file != "" {
			return &Project{Root: current, ComposeFile: file, Discovered: true}
		}
		if file := composeFileFromDevcontainer(current); file != "" {
			return &Project{Root: filepath.Dir(file), ComposeFile: file, Discovered: true}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return &Project{Root: dir}
}

// findComposeFile returns the first default compose file present in dir.
func findComposeFile(dir string) string {
	for _, name := range ComposeFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// composeFileFromDevcontainer returns the compose file the lifecycle
// commands would use when run next to a compose file referenced by
// dir/.devcontainer/devcontainer.json, or "".
//
// Lifecycle commands never pass -f, so a referenced file only counts when
// its base name is one of ComposeFileNames. The returned path is the file
// the compose tool itself would pick in that directory, which may be a
// higher-priority default sitting next to the referenced one.
func composeFileFromDevcontainer(dir string) string {
	path := filepath.Join(dir, ".devcontainer", "devcontainer.json")
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	cfg, err := LoadDevcontainer(path)
	if err != nil {
		return ""
	}
	for _, file := range cfg.ComposeFiles() {
		if !isDefaultComposeName(filepath.Base(file)) {
			continue
		}
		// Relative paths in devcontainer.json are relative to its directory.
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		if found := findComposeFile(filepath.Dir(filepath.Clean(file))); found != "" {
			return found
		}
	}
	return ""
}

func isDefaultComposeName(name string) bool {
	for _, n := range ComposeFileNames {
		if n == name {
			return true
		}
	}
	return false
}

// Name returns the compose project name: the compose file's top-level name
// when set, otherwise the normalized base name of Root. The compose file is
// read on every call; callers that already parsed it use NameFor.
func (p *Project) Name() string {
	if p.ComposeFile == "" {
		return p.NameFor(nil)
	}
	cf, err := LoadComposeFile(p.ComposeFile)
	if err != nil {
		return p.NameFor(nil)
	}
	return p.NameFor(cf)
}

// NameFor is Name with the project's compose file already parsed. cf may be
// nil.
func (p *Project) NameFor(cf *ComposeFile) string {
	if cf != nil && cf.Name != "" {
		return cf.Name
	}
	return NormalizeName(filepath.Base(p.Root))
}

// NormalizeName applies the compose project name rules: lowercase, keeping
// only letters, digits, dashes and underscores.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
