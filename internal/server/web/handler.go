// Package web is the HTTP surface of sharebox: server-rendered pages for
// login, sign-up and the dashboards, plus a small JSON API used by the
// pages' scripts.
package web

import (
	"net/http"

	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/services"
	"github.com/dmitrijs2005/sharebox/internal/server/session"
)

// multipartOverhead is allowed on top of the upload limit for form
// boundaries and the description field.
const multipartOverhead int64 = 1 << 20

// BlobSource hands back stored bytes. Only the memory blob store needs the
// web layer to serve its files.
type BlobSource interface {
	Get(key string) ([]byte, string, bool)
}

type Handler struct {
	users    *services.UserService
	auth     *services.AuthService
	files    *services.FileService
	sessions *session.Manager
	views    *views
	blobs    BlobSource
	logger   logging.Logger
}

func NewHandler(
	users *services.UserService,
	auth *services.AuthService,
	files *services.FileService,
	sessions *session.Manager,
	logger logging.Logger,
) (*Handler, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Handler{
		users:    users,
		auth:     auth,
		files:    files,
		sessions: sessions,
		views:    v,
		logger:   logger.With("module", "web"),
	}, nil
}

// ServeBlobs exposes src under /blobs/. Call it before Routes.
func (h *Handler) ServeBlobs(src BlobSource) {
	h.blobs = src
}

// Routes returns the full handler chain: recovery, request ids and access
// logging around the route table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /index", h.handleIndex)
	mux.HandleFunc("GET /add-user-route", h.handleAddUser)
	mux.HandleFunc("GET /dashboard", h.handleDashboard)
	mux.HandleFunc("POST /login", h.handleLogin)
	mux.HandleFunc("GET /logout", h.handleLogout)

	mux.HandleFunc("POST /api/users", h.handleCreateUser)
	mux.HandleFunc("GET /api/users", h.handleListUsers)
	mux.HandleFunc("PUT /api/users/{id}", h.handleUpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", h.handleDeleteUser)

	mux.HandleFunc("POST /upload", h.handleUpload)
	mux.HandleFunc("GET /api/files", h.handleListFiles)
	mux.HandleFunc("GET /delete-file", h.handleDeleteFile)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if h.blobs != nil {
		mux.HandleFunc("GET /blobs/{key...}", h.handleBlob)
	}

	static := staticHandler()
	mux.Handle("GET /css/", static)
	mux.Handle("GET /js/", static)

	var handler http.Handler = mux
	handler = loggingMiddleware(h.logger, handler)
	handler = requestIDMiddleware(handler)
	handler = recoverMiddleware(h.logger, handler)
	return handler
}

func (h *Handler) handleBlob(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok := h.blobs.Get(r.PathValue("key"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(data)
}

func identityOf(sess *session.Session) services.Identity {
	return services.Identity{Email: sess.Email, Name: sess.Name, Admin: sess.IsAdmin()}
}

// requireSession writes a 401 JSON error when the request has no live
// session.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.sessions.Load(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: true, Message: "Not logged in"})
		return nil, false
	}
	return sess, true
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return nil, false
	}
	if !sess.IsAdmin() {
		writeJSON(w, http.StatusForbidden, errorBody{Error: true, Message: "Admin access required"})
		return nil, false
	}
	return sess, true
}
