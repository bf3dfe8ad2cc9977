package command

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hr_records/internal/domain"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"id":1,"name":"Alice Nguyen","position":"Engineer","department":"Engineering"}]`)
		case http.MethodPost:
			var in domain.EmployeeInput
			_ = json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in.ToEmployee(42))
		}
	})
	mux.HandleFunc("/leave-requests/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Leave request not found with ID: 999"}`)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "admin123" {
			_, _ = io.WriteString(w, `{"success":false,"message":"Invalid password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"token":"session_cli","user":{"id":1,"email":"admin@example.com"}}`)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok","database":"up"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, apiURL, mirrorPath string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewCommandLine().NewCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--api-url", apiURL, "--mirror-path", mirrorPath}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEmployeesCommands(t *testing.T) {
	srv := fakeAPI(t)
	mirrorPath := filepath.Join(t.TempDir(), "mirror.json")

	out, _, err := run(t, srv.URL, mirrorPath, "employees", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Nguyen")
	assert.Contains(t, out, "Engineering")

	out, _, err = run(t, srv.URL, mirrorPath, "employees", "add", "--name", "Bob")
	require.NoError(t, err)
	assert.Contains(t, out, "employee 42 added")

	_, _, err = run(t, srv.URL, mirrorPath, "employees", "add")
	assert.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	srv := fakeAPI(t)
	mirrorPath := filepath.Join(t.TempDir(), "mirror.json")

	_, _, err := run(t, srv.URL, mirrorPath, "login", "admin@example.com", "--password", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	out, _, err := run(t, srv.URL, mirrorPath, "login", "admin@example.com", "--password", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as admin@example.com")

	raw, err := os.ReadFile(mirrorPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"auth": "true"`)
	assert.Contains(t, string(raw), `"token": "session_cli"`)

	out, _, err = run(t, srv.URL, mirrorPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "authenticated: true")

	_, _, err = run(t, srv.URL, mirrorPath, "logout")
	require.NoError(t, err)
	_, _, err = run(t, srv.URL, mirrorPath, "logout")
	require.NoError(t, err)

	out, _, err = run(t, srv.URL, mirrorPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "authenticated: false")
}

func TestLeaveCommands(t *testing.T) {
	srv := fakeAPI(t)
	mirrorPath := filepath.Join(t.TempDir(), "mirror.json")

	_, _, err := run(t, srv.URL, mirrorPath, "leave", "approve", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leave request 999 not found")

	_, _, err = run(t, srv.URL, mirrorPath, "leave", "set-status", "abc", "Approved")
	assert.Error(t, err)
}

func TestCachedDataWhenAPIUnreachable(t *testing.T) {
	srv := fakeAPI(t)
	apiURL := srv.URL
	srv.Close()
	mirrorPath := filepath.Join(t.TempDir(), "mirror.json")

	out, stderr, err := run(t, apiURL, mirrorPath, "leave", "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Failed to load leave requests")
	assert.Contains(t, out, "Jane Smith")

	out, _, err = run(t, apiURL, mirrorPath, "attendance", "add", "--employee", "2", "--date", "2024-06-03", "--status", "Absent")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded locally")

	out, _, err = run(t, apiURL, mirrorPath, "attendance", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-03")
	assert.Contains(t, out, "(local)")

	_, _, err = run(t, apiURL, mirrorPath, "employees", "list")
	assert.Error(t, err)
}
