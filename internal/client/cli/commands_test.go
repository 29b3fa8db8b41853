package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-app/internal/client"
	"github.com/adanyl0v/go-todo-app/internal/config"
	"github.com/adanyl0v/go-todo-app/internal/models"
)

const testToken = "tkn"

// fakeAPI serves a single user's todos.
type fakeAPI struct {
	mu    sync.Mutex
	todos []models.Task
	ids   int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret1" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Email or password invalid"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "User logged in successfully",
			"token":   testToken,
			"data":    map[string]string{"id": "u1", "username": "alice", "email": body["email"]},
		})
	})
	mux.HandleFunc("POST /api/v1/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "New user created successfully"})
	})
	mux.HandleFunc("GET /api/v1/todo/get", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": append([]models.Task{}, f.todos...)})
	}))
	mux.HandleFunc("POST /api/v1/todo/create", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.ids++
		todo := models.Task{ID: fmt.Sprintf("t%d", f.ids), UserID: "u1", Title: body["title"], Description: body["description"]}
		f.todos = append(f.todos, todo)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": todo})
	}))
	mux.HandleFunc("PUT /api/v1/todo/isCompleted/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.todos {
			if f.todos[i].ID == r.PathValue("id") {
				f.todos[i].IsCompleted = body["isCompleted"]
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": f.todos[i]})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Todo not found or not yours"})
	}))
	mux.HandleFunc("DELETE /api/v1/todo/delete/{id}", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.todos {
			if f.todos[i].ID == r.PathValue("id") {
				f.todos = append(f.todos[:i], f.todos[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Todo deleted successfully"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Todo not found or not yours"})
	}))
	return mux
}

func (f *fakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "message": "Invalid token"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type cliFixture struct {
	api         *fakeAPI
	serverURL   string
	sessionFile string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }
	t.Cleanup(func() { readPassword = orig })

	return &cliFixture{
		api:         api,
		serverURL:   srv.URL + "/api/v1",
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

// run executes one CLI invocation with stdin and returns its output.
func (f *cliFixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(&config.ClientConfig{
		ServerURL:   f.serverURL,
		SessionFile: f.sessionFile,
		Timeout:     5 * time.Second,
	}, strings.NewReader(stdin), &out)
	require.NoError(t, err)

	root := NewRootCommand(app)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoginSavesSession(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "a@x.com\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice.")

	session, err := client.NewSessionStore(f.sessionFile).Load()
	require.NoError(t, err)
	assert.Equal(t, testToken, session.Token)
	assert.Equal(t, "a@x.com", session.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newCLIFixture(t)
	readPassword = func(int) ([]byte, error) { return []byte("nope"), nil }

	_, err := f.run(t, "", "login", "--email", "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email or password invalid")

	_, err = client.NewSessionStore(f.sessionFile).Load()
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestCommandsNeedLogin(t *testing.T) {
	f := newCLIFixture(t)

	for _, args := range [][]string{{"list"}, {"add", "x", "-d", "y"}, {"rm", "t1"}, {"profile"}} {
		_, err := f.run(t, "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not logged in")
	}
}

func TestTodoWorkflow(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run(t, "", "signup", "--username", "alice", "--email", "a@x.com", "--phone", "1234567890")
	require.NoError(t, err)

	_, err = f.run(t, "", "login", "--email", "a@x.com")
	require.NoError(t, err)

	out, err := f.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to do.")

	out, err = f.run(t, "2 liters\n", "add", "Buy milk")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] t1 Buy milk")

	out, err = f.run(t, "", "done", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] t1 Buy milk")

	out, err = f.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "2 liters")

	out, err = f.run(t, "", "rm", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted.")

	_, err = f.run(t, "", "undone", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Todo not found or not yours")

	_, err = f.run(t, "", "logout")
	require.NoError(t, err)
	_, err = f.run(t, "", "list")
	assert.Error(t, err)
}

func TestPromptReadsLastLineWithoutNewline(t *testing.T) {
	app := &App{out: io.Discard}
	app.in = bufio.NewReader(strings.NewReader("value"))

	got, err := app.prompt("Label")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}
