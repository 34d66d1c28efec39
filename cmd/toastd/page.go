package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/toastui"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

const pageStyle = `
.toasts{position:fixed;right:1rem;bottom:1rem;display:flex;flex-direction:column;gap:.5rem;list-style:none;margin:0;padding:0}
.toast{min-width:18rem;padding:.75rem 2rem .75rem 1rem;border-radius:.5rem;background:#fff;border:1px solid #e5e7eb;box-shadow:0 4px 12px rgba(0,0,0,.08);position:relative;transition:opacity .3s,transform .3s}
.toast[data-state=closed]{opacity:0;transform:translateX(1rem)}
.toast--destructive{background:#dc2626;color:#fff;border-color:#b91c1c}
.toast__title{font-weight:600;margin:0}
.toast__description{margin:.25rem 0 0}
.toast__close{position:absolute;top:.25rem;right:.5rem;border:0;background:none;cursor:pointer;color:inherit}
`

func demoPage(basePath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="utf-8"><title>toastd</title>`+
			`<script type="module" src="%s"></script><style>%s</style></head>`+
			`<body data-signals="{title: 'Hello', description: '', variant: 'default'}">`+
			`<h1>Toasts</h1>`+
			`<input data-bind:title placeholder="Title"> `+
			`<input data-bind:description placeholder="Description"> `+
			`<select data-bind:variant><option value="default">default</option><option value="destructive">destructive</option></select> `+
			`<button data-on:click="@post('%s')">Notify</button> `+
			`<button data-on:click="@post('/demo/saved')">Server toast</button> `+
			`<button data-on:click="@delete('%s')">Dismiss all</button>`,
			datastarScript, pageStyle,
			templ.EscapeString(basePath), templ.EscapeString(basePath)); err != nil {
			return err
		}
		if err := toastui.Container(basePath).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
