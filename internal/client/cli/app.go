// Package cli is an interactive terminal client for the vault server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/secretsvault/internal/client/api"
	"github.com/dmitrijs2005/secretsvault/internal/client/config"
	"github.com/dmitrijs2005/secretsvault/internal/client/models"
	"github.com/dmitrijs2005/secretsvault/internal/common"
)

// VaultClient is the server surface the CLI needs. *api.Client satisfies it.
type VaultClient interface {
	SetToken(token string)
	Ping(ctx context.Context) error
	ListFiles(ctx context.Context) ([]models.File, error)
	AddFile(ctx context.Context, name, content string) (string, error)
	GetFile(ctx context.Context, id string) (*models.File, error)
	DeleteFile(ctx context.Context, id string) (string, error)
	ShareFile(ctx context.Context, id string) (*models.ShareLink, error)
	OpenShared(ctx context.Context, id, code string) (*models.File, error)
}

type App struct {
	config   *config.Config
	client   VaultClient
	reader   *bufio.Reader
	out      io.Writer
	loggedIn bool
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c.ServerURL, c.Token, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, client, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, client VaultClient, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		client:   client,
		reader:   bufio.NewReader(in),
		out:      out,
		loggedIn: c.Token != "",
	}
}

// Run checks the server, asks for a token if none is configured and then
// serves commands until EOF or exit.
func (a *App) Run(ctx context.Context) error {
	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: server is not ready: %v\n", err)
	}

	if !a.loggedIn {
		if err := a.Login(ctx); err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}

	fmt.Fprintln(a.out, "Secrets vault CLI (type 'help' for commands)")
	runREPL(ctx, a, a.out, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

// Login reads a bearer token from the terminal.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret("Bearer token", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	if len(token) == 0 {
		return common.ErrorUnauthorized
	}
	a.client.SetToken(string(token))
	a.loggedIn = true
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.loggedIn = false
	return nil
}
