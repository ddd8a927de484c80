package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/services"
	"github.com/dmitrijs2005/sharebox/internal/server/session"
)

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if err := h.views.render(w, status, name, data); err != nil {
		h.logger.Error(r.Context(), "render failed", "view", name, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, viewIndex, pageData{Title: "Log in"})
}

func (h *Handler) handleAddUser(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, viewAddUser, pageData{Title: "Sign up"})
}

// dashboardData builds the role-specific view from a session snapshot.
func (h *Handler) dashboardData(sess *session.Session, message string) (string, pageData) {
	data := pageData{
		UserName:    sess.Name,
		Email:       sess.Email,
		Admin:       sess.IsAdmin(),
		Message:     message,
		Files:       sess.Files,
		MaxUploadMB: h.files.MaxUploadBytes() >> 20,
	}
	if sess.IsAdmin() {
		data.Title = "Admin"
		data.Users = sess.Users
		return viewAdmin, data
	}
	data.Title = "Dashboard"
	return viewDashboard, data
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Load(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var (
		message string
		users   []models.User
		err     error
	)
	id := identityOf(sess)
	scope := services.ScopeOwn
	if id.Admin {
		scope = services.ScopeAll
		users, err = h.users.FindUsers(r.Context())
	}
	var files []models.File
	if err == nil {
		files, err = h.files.ListFiles(r.Context(), id, scope)
	}

	switch {
	case err == nil:
		h.sessions.Update(sess, func(s *session.Session) {
			s.Files = files
			if id.Admin {
				s.Users = users
			}
		})
		sess.Files = files
		if id.Admin {
			sess.Users = users
		}
	case errors.Is(err, common.ErrorUnauthenticated):
		// The account behind the session is gone.
		h.sessions.Destroy(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	default:
		h.logger.Error(r.Context(), "dashboard refresh failed", "email", sess.Email, "err", err)
		message = "Could not refresh your files, showing the last known list."
	}

	name, data := h.dashboardData(sess, message)
	h.page(w, r, http.StatusOK, name, data)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page(w, r, http.StatusBadRequest, viewIndex, pageData{Title: "Log in", Message: "Invalid form"})
		return
	}

	res, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		status := http.StatusOK
		if errors.Is(err, common.ErrorStore) {
			h.logger.Error(r.Context(), "login failed", "err", err)
			status = http.StatusInternalServerError
		}
		h.page(w, r, status, viewIndex, pageData{Title: "Log in", Message: loginMessage(err)})
		return
	}

	role := session.RoleUser
	if res.Identity.Admin {
		role = session.RoleAdmin
	}
	// a new login replaces whatever session the browser held
	if _, ok := h.sessions.Load(r); ok {
		h.sessions.Destroy(w, r)
	}
	sess, err := h.sessions.Start(w, res.Identity.Email, res.Identity.Name, role)
	if err != nil {
		h.logger.Error(r.Context(), "session start failed", "err", err)
		h.page(w, r, http.StatusInternalServerError, viewIndex, pageData{Title: "Log in", Message: loginMessage(err)})
		return
	}
	h.sessions.Update(sess, func(s *session.Session) {
		s.Users = res.Users
		s.Files = res.Files
	})
	sess.Users = res.Users
	sess.Files = res.Files

	name, data := h.dashboardData(sess, "")
	h.page(w, r, http.StatusOK, name, data)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
