package toastui

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// Handler exposes a session's toast manager over HTTP.
type Handler struct {
	registry *toast.Registry
	cfg      *config
}

// New creates a Handler backed by reg.
func New(reg *toast.Registry, opts ...Option) *Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Handler{registry: reg, cfg: cfg}
}

// Routes returns a router meant to be mounted at the configured base path:
//
//	GET    /        list toasts as JSON
//	POST   /        notify
//	DELETE /        dismiss all
//	GET    /stream  Datastar SSE stream of the rendered list
//	PATCH  /{id}    update
//	DELETE /{id}    dismiss
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.Middleware)

	r.Get("/", h.list)
	r.Post("/", h.notify)
	r.Delete("/", h.dismissAll)
	r.Get("/stream", h.stream)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.dismiss)

	return r
}

// Payload is the JSON body (or Datastar signals) accepted by notify and update.
type Payload struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Variant     string        `json:"variant,omitempty"`
	DurationMS  int64         `json:"duration_ms,omitempty"` // negative keeps the toast until dismissed
	Action      *toast.Action `json:"action,omitempty"`
}

func (p Payload) input() toast.Input {
	in := toast.Input{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Variant:     toast.Variant(p.Variant),
		Action:      p.Action,
	}
	switch {
	case p.DurationMS < 0:
		in.Duration = toast.Infinite
	case p.DurationMS > 0:
		in.Duration = time.Duration(p.DurationMS) * time.Millisecond
	}
	return in
}

// View is the JSON representation of a toast.
type View struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Variant     string        `json:"variant"`
	Action      *toast.Action `json:"action,omitempty"`
	DurationMS  int64         `json:"duration_ms"`
	Visible     bool          `json:"visible"`
	State       string        `json:"state"`
}

func newView(t toast.Toast) View {
	d := int64(-1)
	if !t.Persistent() {
		d = t.Duration.Milliseconds()
	}
	return View{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Variant:     string(t.Variant),
		Action:      t.Action,
		DurationMS:  d,
		Visible:     t.Visible,
		State:       string(t.State),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}

	toasts := m.List()
	views := make([]View, 0, len(toasts))
	for _, t := range toasts {
		views = append(views, newView(t))
	}
	h.writeJSON(w, r, http.StatusOK, views)
}

func (h *Handler) notify(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}

	var p Payload
	if err := h.decode(r, &p); err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	id := m.Notify(p.input())
	if IsDataStar(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, r, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}

	var p Payload
	if err := h.decode(r, &p); err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	m.Update(chi.URLParam(r, "id"), p.input())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dismiss(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	m.Dismiss(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dismissAll(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	m.DismissAll()
	w.WriteHeader(http.StatusNoContent)
}

// stream patches the rendered toast list into the page on connect and after
// every change until the client goes away or the manager is closed.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	// Subscribe before taking the first snapshot so no change slips between them.
	sub := m.Subscribe(ctx)
	defer sub.Close()

	sse := datastar.NewSSE(w, r)
	patch := func(toasts []toast.Toast) error {
		return sse.PatchElementTempl(List(toasts, h.cfg.basePath), datastar.WithSelector(h.cfg.target))
	}

	if err := patch(m.List()); err != nil {
		h.logStreamError(r, err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				return
			}
			if err := patch(msg.Data); err != nil {
				h.logStreamError(r, err)
				return
			}
		}
	}
}

func (h *Handler) manager(w http.ResponseWriter, r *http.Request) (*toast.Manager, bool) {
	m := toast.FromContext(r.Context())
	if m == nil {
		h.fail(w, r, http.StatusInternalServerError, ErrNoManager)
		return nil, false
	}
	return m, true
}

func (h *Handler) decode(r *http.Request, p *Payload) error {
	var err error
	if IsDataStar(r) {
		err = datastar.ReadSignals(r, p)
	} else {
		err = json.NewDecoder(r.Body).Decode(p)
	}
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.cfg.logger.LogAttrs(r.Context(), slog.LevelError, "failed to write toast response",
			logger.Component("toastui"),
			logger.Error(err),
		)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.cfg.logger.LogAttrs(r.Context(), level, "toast request failed",
		logger.Component("toastui"),
		slog.Int("status", status),
		logger.Error(err),
	)
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) logStreamError(r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	h.cfg.logger.LogAttrs(r.Context(), slog.LevelWarn, "toast stream closed",
		logger.Component("toastui"),
		logger.Error(err),
	)
}
