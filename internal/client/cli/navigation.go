package cli

import "context"

// Back returns to the previous view.
func (a *App) Back(_ context.Context, _ []string) error {
	m, ok := a.router.Back()
	if !ok {
		printlnFn("Nowhere to go back to")
	}
	a.show(m)
	return nil
}

// Where shows the current view.
func (a *App) Where(_ context.Context, _ []string) error {
	a.show(a.router.Resolve())
	return nil
}
