package toastui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// List renders the toast container with every tracked toast. Dismissing
// toasts are kept with data-state="closed" so CSS can animate them out.
func List(toasts []toast.Toast, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ol id="toasts" class="toasts" role="region" aria-live="polite">`); err != nil {
			return err
		}
		for _, t := range toasts {
			if err := Item(t, basePath).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol>`)
		return err
	})
}

// Item renders a single toast.
func Item(t toast.Toast, basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		state := "open"
		if !t.Visible {
			state = "closed"
		}
		role := "status"
		if t.Variant == toast.VariantDestructive {
			role = "alert"
		}

		var b strings.Builder
		fmt.Fprintf(&b, `<li id="toast-%s" class="toast toast--%s" role="%s" data-state="%s">`,
			templ.EscapeString(t.ID), templ.EscapeString(string(t.Variant)), role, state)
		if t.Title != "" {
			fmt.Fprintf(&b, `<p class="toast__title">%s</p>`, templ.EscapeString(t.Title))
		}
		if t.Description != "" {
			fmt.Fprintf(&b, `<p class="toast__description">%s</p>`, templ.EscapeString(t.Description))
		}
		if t.Action != nil && t.Action.Label != "" {
			fmt.Fprintf(&b, `<a class="toast__action" href="%s">%s</a>`,
				templ.EscapeString(string(templ.URL(t.Action.URL))), templ.EscapeString(t.Action.Label))
		}
		dismissURL := strings.TrimRight(basePath, "/") + "/" + url.PathEscape(t.ID)
		fmt.Fprintf(&b, `<button type="button" class="toast__close" aria-label="Close" data-on:click="@delete('%s')">&times;</button>`,
			templ.EscapeString(dismissURL))
		b.WriteString(`</li>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Container renders an empty toast region that opens the SSE stream on load.
// Place it once in the page layout.
func Container(basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		streamURL := strings.TrimRight(basePath, "/") + "/stream"
		_, err := fmt.Fprintf(w, `<div data-init="@get('%s')"><ol id="toasts" class="toasts" role="region" aria-live="polite"></ol></div>`,
			templ.EscapeString(streamURL))
		return err
	})
}
