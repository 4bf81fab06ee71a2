package cli

import (
	"context"
	"encoding/json"
)

// Open navigates to target, running the gates of the matching route. When
// the page is admitted and loads an endpoint, the reply is printed.
func (a *App) Open(ctx context.Context, target string) error {
	out := a.router.Navigate(ctx, target)

	switch {
	case out.NotFound:
		printlnFn("Not found:", out.Location)
		return nil
	case !out.Admitted:
		printlnFn("Redirected:", out.Requested, "->", out.Location)
		return nil
	}

	printlnFn("Now at", out.Location)
	if out.Endpoint == "" {
		return nil
	}
	return a.Get(ctx, out.Endpoint, nil)
}

// Where prints the current location.
func (a *App) Where(ctx context.Context) error {
	printlnFn(a.router.Location())
	return nil
}

// Get calls a GET endpoint with key=value query parameters and prints the
// JSON reply.
func (a *App) Get(ctx context.Context, endpoint string, args []string) error {
	params, err := ParseParams(args)
	if err != nil {
		return err
	}

	var raw json.RawMessage
	if err := a.api.Get(ctx, endpoint, params, &raw); err != nil {
		return err
	}

	printlnFn(formatJSON(raw))
	return nil
}

func formatJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "(empty)"
	}
	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(b)
}
