package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	fail     error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) Add(ctx context.Context) error { return f.record("add") }
func (f *fakeExec) Show(ctx context.Context, id string) error { return f.record("show " + id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Share(ctx context.Context, id string) error { return f.record("share " + id) }
func (f *fakeExec) Open(ctx context.Context, id, code string) error {
	return f.record("open " + id + " " + code)
}

func runScript(a execIface, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	runREPL(context.Background(), a, &out, in)
	return out.String()
}

func TestRunREPL_Dispatch(t *testing.T) {
	f := &fakeExec{}
	out := runScript(f,
		"help",
		"login",
		"help",
		"",
		"l",
		"list",
		"add",
		"show id1",
		"delete id2",
		"share id3",
		"open id4 c0de",
		"logout",
		"exit",
		"list",
	)

	assert.Equal(t, []string{
		"login", "list", "list", "add", "show id1", "delete id2", "share id3", "open id4 c0de", "logout",
	}, f.calls)
	assert.Contains(t, out, "Available commands: login, open, exit")
	assert.Contains(t, out, "Available commands: (l)ist, add")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	out := runScript(f, "show", "share a b", "open only-id", "frobnicate")

	assert.Empty(t, f.calls)
	assert.Contains(t, out, "Usage: show <id>")
	assert.Contains(t, out, "Usage: share <id>")
	assert.Contains(t, out, "Usage: open <id> <code>")
	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	f := &fakeExec{loggedIn: true, fail: errors.New("boom")}
	out := runScript(f, "list", "show x")

	assert.Equal(t, []string{"list", "show x"}, f.calls)
	assert.Equal(t, 2, strings.Count(out, "Error: boom"))
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	var out bytes.Buffer
	runREPL(context.Background(), f, &out, bufio.NewReader(strings.NewReader("list")))
	assert.Equal(t, []string{"list"}, f.calls)
}
