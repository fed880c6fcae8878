package compose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// runCall records one invocation of fakeRunner.
type runCall struct {
	dir  string
	name string
	args []string
}

// fakeRunner simulates a host where only the binaries listed in installed
// can be spawned. Each installed binary answers with the RunResult stored
// under "name arg1 arg2"; unknown invocations succeed with empty output.
type fakeRunner struct {
	mu        sync.Mutex
	installed map[string]bool
	results   map[string]RunResult
	calls     []runCall
}

func newFakeRunner(installed ...string) *fakeRunner {
	f := &fakeRunner{
		installed: make(map[string]bool),
		results:   make(map[string]RunResult),
	}
	for _, name := range installed {
		f.installed[name] = true
	}
	return f
}

func (f *fakeRunner) on(line string, result RunResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[line] = result
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (RunResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, runCall{dir: dir, name: name, args: args})
	if !f.installed[name] {
		return RunResult{}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return f.results[strings.Join(append([]string{name}, args...), " ")], nil
}

// callsTo returns the recorded argument lists passed to name.
func (f *fakeRunner) callsTo(name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out [][]string
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c.args)
		}
	}
	return out
}

// requireShell skips tests that rely on /bin/sh fake binaries.
func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compose tools are shell scripts")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// writeFakeTool installs an executable shell script called name in dir.
// The body runs with the compose subcommand in $1.
func writeFakeTool(t *testing.T, dir, name, body string) {
	t.Helper()
	script := fmt.Sprintf("#!/bin/sh\n%s\n", body)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

// fakeComposeBody behaves like a compose tool for a project whose compose
// file is docker-compose.yml in the working directory. Running state is
// tracked in a .state file so ps reflects earlier calls. Only shell
// builtins are used because PATH holds nothing but the fake tools.
const fakeComposeBody = `case "$1" in
version)
	echo "fake compose version 1.0.0"
	;;
up)
	if [ ! -f docker-compose.yml ]; then
		echo "Can't find a suitable configuration file in this directory or any parent. Are you in the right directory?" >&2
		exit 14
	fi
	echo up > .state
	echo "Creating demo_web_1 ... done"
	echo "Creating demo_db_1 ... done"
	;;
down)
	if [ ! -f docker-compose.yml ]; then
		echo "Can't find a suitable configuration file in this directory or any parent." >&2
		exit 14
	fi
	echo down > .state
	echo "Removing network demo_default"
	;;
ps)
	echo "NAME         STATE"
	if [ -f .state ] && read state < .state && [ "$state" = up ]; then
		echo "demo_web_1   Up"
		echo "demo_db_1    Up"
	fi
	;;
*)
	echo "unknown command $1" >&2
	exit 1
	;;
esac`
