// Package toastui serves per-session toast managers over HTTP.
//
// A Handler resolves the caller's session from a cookie, attaches the session's
// *toast.Manager to the request context and exposes JSON endpoints for
// notify, update and dismiss. Browsers using Datastar open the stream route
// and receive the rendered toast list as element patches whenever it changes.
//
//	reg := toast.NewRegistry(10000)
//	h := toastui.New(reg)
//
//	r := chi.NewRouter()
//	r.Use(h.Middleware)
//	r.Mount(toastui.DefaultBasePath, h.Routes())
//
// Inside any handler behind the middleware, toast.Notify(r.Context(), ...)
// reaches the same manager the stream is watching.
package toastui
