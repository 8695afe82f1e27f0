package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/stepup/internal/testutil"
)

// site is a fake update server plus a local install wired to it.
type site struct {
	root   string
	config string
	server *httptest.Server

	mu       sync.Mutex
	latest   string
	list     []string
	minimum  string
	packages map[string][]byte
	failures map[string]int
	hits     map[string]int
}

func newSite(t *testing.T, local string) *site {
	t.Helper()
	s := &site{
		root:     t.TempDir(),
		packages: map[string][]byte{},
		failures: map[string]int{},
		hits:     map[string]int{},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.server.Close)

	if local != "" {
		testutil.WriteTree(t, s.root, map[string]string{"SCRIPTS/LOC_VER.txt": local})
	}
	s.config = filepath.Join(s.root, "stepup.toml")
	s.writeConfig(t, "")
	return s
}

// writeConfig writes stepup.toml; extra is appended to the [install] table.
func (s *site) writeConfig(t *testing.T, extra string) {
	t.Helper()
	body := fmt.Sprintf(`[remote]
latest_url = "%[1]s/latest.txt"
list_url = "%[1]s/versions.txt"
min_supported_url = "%[1]s/minimum.txt"
package_url_template = "%[1]s/packages/Update_{version}.zip"

[install]
changelog_file = "CHANGES.txt"
delete_list_file = "dellist.txt"
%[2]s
`, s.server.URL, extra)
	require.NoError(t, os.WriteFile(s.config, []byte(body), 0o644))
}

func (s *site) publish(t *testing.T, v string, entries ...testutil.ZipEntry) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Update_"+v+".zip")
	testutil.WriteZip(t, path, entries...)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[v] = data
	s.list = append(s.list, v)
}

// failNext makes the next n package downloads of v answer 500.
func (s *site) failNext(v string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[v] = n
}

func (s *site) downloads(v string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[v]
}

func (s *site) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case r.URL.Path == "/latest.txt":
		_, _ = fmt.Fprintln(w, s.latest)
	case r.URL.Path == "/versions.txt":
		_, _ = fmt.Fprint(w, strings.Join(s.list, "\r\n"))
	case r.URL.Path == "/minimum.txt":
		if s.minimum == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, s.minimum)
	case strings.HasPrefix(r.URL.Path, "/packages/Update_"):
		v := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/packages/Update_"), ".zip")
		s.hits[v]++
		if s.failures[v] > 0 {
			s.failures[v]--
			http.Error(w, "unavailable", http.StatusInternalServerError)
			return
		}
		data, ok := s.packages[v]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(data)))
		_, _ = w.Write(data)
	default:
		http.NotFound(w, r)
	}
}

func (s *site) marker(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.root, "SCRIPTS", "LOC_VER.txt"))
	require.NoError(t, err)
	return string(data)
}

func (s *site) file(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// run executes stepup against the site with input on stdin and a
// non-interactive terminal.
func (s *site) run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	origStdin, origTerminal := stdin, isTerminal
	t.Cleanup(func() { stdin, isTerminal = origStdin, origTerminal })
	stdin = strings.NewReader(input)
	isTerminal = func() bool { return false }

	var out, errOut bytes.Buffer
	argv := append([]string{"stepup", "--config", s.config}, args...)
	err := execute(argv, &out, &errOut)
	return out.String(), errOut.String(), err
}

// standardChain publishes 1.0.0 through 1.2.0 with two real packages.
func standardChain(t *testing.T, s *site) {
	t.Helper()
	s.list = append(s.list, "1.0.0")
	s.publish(t, "1.1.0",
		testutil.ZipEntry{Name: "dellist.txt", Body: "old.txt\r\n"},
		testutil.ZipEntry{Name: "bin/app.txt", Body: "v1.1"},
		testutil.ZipEntry{Name: "CHANGES.txt", Body: "1.1.0 notes"},
	)
	s.publish(t, "1.2.0",
		testutil.ZipEntry{Name: "bin/app.txt", Body: "v1.2"},
		testutil.ZipEntry{Name: "data/new.txt", Body: "new"},
	)
	s.latest = "1.2.0"
	s.minimum = "1.0.0"
}
