package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/affiliate/internal/client/nav"
	"github.com/dmitrijs2005/affiliate/internal/common"
)

// submit runs fn unless another action is still in flight. The flag is
// cleared however fn ends.
func (a *App) submit(fn func() error) error {
	if !a.inFlight.CompareAndSwap(false, true) {
		printlnFn(msgBusy)
		return common.ErrorBusy
	}
	defer a.inFlight.Store(false)
	return fn()
}

// fail reports a static message to the user and the details to the log.
func (a *App) fail(ctx context.Context, msg string, err error) error {
	a.logger.Error(ctx, msg, "error", err)
	printlnFn(msg)
	return err
}

// enter navigates to path and reports whether its page may be shown.
// Protected pages bounce to the login view when nobody is logged in.
func (a *App) enter(path string) (nav.Match, bool) {
	var m nav.Match
	if a.router.History().Current() == path {
		m = a.router.Resolve()
	} else {
		m = a.router.Push(path)
	}

	switch {
	case m.Page == nav.PageLoading:
		printlnFn(msgLoading)
		return m, false
	case m.From != "":
		printlnFn(msgLoginRequired)
		return m, false
	}
	return m, true
}

func (a *App) show(m nav.Match) {
	printlnFn(fmt.Sprintf("[%s] %s", m.Page, m.Path))
}
