package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(_ context.Context, a []string) error { return f.rec("register", a) }
func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.loggedIn = true
	return f.rec("login", a)
}
func (f *fakeExec) Logout(_ context.Context, a []string) error {
	f.loggedIn = false
	return f.rec("logout", a)
}
func (f *fakeExec) WhoAmI(_ context.Context, a []string) error     { return f.rec("whoami", a) }
func (f *fakeExec) Products(_ context.Context, a []string) error   { return f.rec("products", a) }
func (f *fakeExec) AddProduct(_ context.Context, a []string) error { return f.rec("addproduct", a) }
func (f *fakeExec) Product(_ context.Context, a []string) error    { return f.rec("product", a) }
func (f *fakeExec) Status(_ context.Context, a []string) error     { return f.rec("status", a) }
func (f *fakeExec) Bloggers(_ context.Context, a []string) error   { return f.rec("bloggers", a) }
func (f *fakeExec) AddBlogger(_ context.Context, a []string) error { return f.rec("addblogger", a) }
func (f *fakeExec) Link(_ context.Context, a []string) error       { return f.rec("link", a) }
func (f *fakeExec) Resolve(_ context.Context, a []string) error    { return f.rec("resolve", a) }
func (f *fakeExec) Visit(_ context.Context, a []string) error      { return f.rec("visit", a) }
func (f *fakeExec) Order(_ context.Context, a []string) error      { return f.rec("order", a) }
func (f *fakeExec) Back(_ context.Context, a []string) error       { return f.rec("back", a) }
func (f *fakeExec) Where(_ context.Context, a []string) error      { return f.rec("where", a) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"products",
		"product 5",
		"status 9 processed",
		"link 5 3",
		"",
		"resolve abc",
		"visit 5 3",
		"order",
		"back",
		"where",
		"whoami",
		"foobar",
		"logout",
		"exit",
		"products",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{
		"login", "products", "product", "status", "link", "resolve", "visit", "order", "back", "where", "whoami", "logout",
	}, exec.calls, "commands after exit must not run")
	assert.Equal(t, []string{"9", "processed"}, exec.args["status"])
	assert.Equal(t, []string{"5", "3"}, exec.args["link"])

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, helpLoggedOut)
	assert.Contains(t, joined, helpLoggedIn)
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "shop (status)> ")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_StopsOnEOFAfterLastLine(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("register\nwhere")))

	assert.Equal(t, []string{"register", "where"}, exec.calls)
}
