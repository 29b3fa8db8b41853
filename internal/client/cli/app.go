// Package cli is the command-line front end of the todo service.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/adanyl0v/go-todo-app/internal/client"
	"github.com/adanyl0v/go-todo-app/internal/config"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type App struct {
	api      *client.Client
	sessions *client.SessionStore
	session  *client.Session

	in  *bufio.Reader
	out io.Writer
}

func NewApp(cfg *config.ClientConfig, in io.Reader, out io.Writer) (*App, error) {
	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}

	return &App{
		api:      client.New(cfg.ServerURL, client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout})),
		sessions: client.NewSessionStore(sessionPath),
		in:       bufio.NewReader(in),
		out:      out,
	}, nil
}

// loadSession restores the saved token, if there is one.
func (a *App) loadSession() error {
	session, err := a.sessions.Load()
	if err != nil {
		if errors.Is(err, client.ErrNoSession) {
			return nil
		}
		return err
	}
	a.session = session
	a.api.SetToken(session.Token)
	return nil
}

func (a *App) requireSession() error {
	if a.session == nil {
		return errors.New("not logged in, run `todo login` first")
	}
	return nil
}

// prompt reads one line, printing label first.
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptIfEmpty keeps value or asks for it.
func (a *App) promptIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.prompt(label)
}

func (a *App) promptPassword() (string, error) {
	if _, err := fmt.Fprint(a.out, "Password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}
