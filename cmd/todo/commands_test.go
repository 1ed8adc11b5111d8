package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `[
	{"id":1,"title":"Pay rent","description":"","due_date":"01/07/2025","status":"Pending"},
	{"id":2,"title":"Grocery run","description":"milk","due_date":"19/06/2025","status":"Completed"}
]`

// newServer serves snapshot for GET and hands other requests to mutate.
func newServer(t *testing.T, mutate func(method string, body map[string]any) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, snapshot)
			return
		}
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)

		status, resp := mutate(r.Method, body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestList_SortedAndFiltered(t *testing.T) {
	srv := newServer(t, nil)

	out, err := run(t, srv, "list", "--sort", "asc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2 "), "ascending puts 19/06 first: %q", lines[1])
	assert.Contains(t, lines[3], "sort: asc  filter: all")

	out, err = run(t, srv, "list", "--filter", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	assert.NotContains(t, out, "Grocery run")
}

func TestList_InvalidFlag(t *testing.T) {
	srv := newServer(t, nil)

	_, err := run(t, srv, "list", "--sort", "sideways")
	assert.ErrorContains(t, err, "invalid --sort")
}

func TestDone_SendsStatusUpdate(t *testing.T) {
	var got map[string]any
	srv := newServer(t, func(method string, body map[string]any) (int, string) {
		assert.Equal(t, http.MethodPatch, method)
		got = body
		return http.StatusOK, snapshot
	})

	_, err := run(t, srv, "done", "1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1), "status": "Completed"}, got)
}

func TestUndo_AlreadyPendingSendsNothing(t *testing.T) {
	srv := newServer(t, func(string, map[string]any) (int, string) {
		t.Error("unexpected mutation")
		return http.StatusInternalServerError, `{"error":"unexpected"}`
	})

	_, err := run(t, srv, "undo", "1")
	assert.NoError(t, err)
}

func TestEdit_SendsOnlyChangedFlags(t *testing.T) {
	var got map[string]any
	srv := newServer(t, func(_ string, body map[string]any) (int, string) {
		got = body
		return http.StatusOK, snapshot
	})

	_, err := run(t, srv, "edit", "2", "--description", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(2), "description": ""}, got)
}

func TestRm_ServerErrorIsReturned(t *testing.T) {
	srv := newServer(t, func(string, map[string]any) (int, string) {
		return http.StatusInternalServerError, `{"error":"database is locked"}`
	})

	_, err := run(t, srv, "rm", "2")
	assert.EqualError(t, err, "Failed to delete task: database is locked")
}

func TestAdd_ValidationBlocksRequest(t *testing.T) {
	srv := newServer(t, func(string, map[string]any) (int, string) {
		t.Error("unexpected mutation")
		return http.StatusOK, snapshot
	})

	_, err := run(t, srv, "add", "Pay rent", "--due", "31/02/2030")
	assert.EqualError(t, err, "Due date 31/02/2030 is not a real calendar date")
}
