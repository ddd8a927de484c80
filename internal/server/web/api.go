package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
	"github.com/dmitrijs2005/sharebox/internal/server/services"
	"github.com/dmitrijs2005/sharebox/internal/server/session"
)

type userRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	NewName     *string `json:"newName"`
	NewPassword *string `json:"newPassword"`
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeUserRequest accepts a JSON body or a regular form.
func decodeUserRequest(r *http.Request) (userRequest, error) {
	var req userRequest
	if isJSON(r) {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, fmt.Errorf("%w: malformed json body", common.ErrorValidation)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: malformed form body", common.ErrorValidation)
	}
	req.Name = r.PostFormValue("name")
	req.Email = r.PostFormValue("email")
	req.Password = r.PostFormValue("password")
	if r.PostForm.Has("newName") {
		v := r.PostFormValue("newName")
		req.NewName = &v
	}
	if r.PostForm.Has("newPassword") {
		v := r.PostFormValue("newPassword")
		req.NewPassword = &v
	}
	return req, nil
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUserRequest(r)
	if err != nil {
		writeError(w, err, "")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: true, Message: "Email is required"})
		return
	}

	u, err := h.users.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, "Could not create user")
		return
	}

	if isJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "User created", "user": u})
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}
	list, err := h.users.FindUsers(r.Context())
	if err != nil {
		writeError(w, err, "Could not list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "users": list})
}

// handleUpdateUser lets a user change their own name or password; the admin
// may change anyone's.
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	req, err := decodeUserRequest(r)
	if err != nil {
		writeError(w, err, "")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = r.PathValue("id")
	}
	if !sess.IsAdmin() && email != sess.Email {
		writeJSON(w, http.StatusForbidden, errorBody{Error: true, Message: "You can only update your own account"})
		return
	}

	u, err := h.users.UpdateUser(r.Context(), email, req.NewName, req.NewPassword)
	if err != nil {
		writeError(w, err, "Could not update user")
		return
	}
	if email == sess.Email && req.NewName != nil {
		h.sessions.Update(sess, func(s *session.Session) { s.Name = u.Name })
	}
	writeSuccess(w, "User updated", map[string]any{"user": u})
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		email = r.PathValue("id")
	}

	if err := h.users.DeleteUser(r.Context(), email); err != nil {
		writeError(w, err, "Could not delete user")
		return
	}
	h.sessions.Update(sess, func(s *session.Session) {
		s.Users = slices.DeleteFunc(slices.Clone(s.Users), func(u models.User) bool { return u.Email == email })
	})
	writeSuccess(w, "User deleted", nil)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	limit := h.files.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, fmt.Errorf("%w: upload exceeds %d bytes", common.ErrorPayloadTooLarge, limit), "")
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: true, Message: "Invalid multipart form"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	fh, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		fh, hdr, err = r.FormFile("image")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: true, Message: "No file uploaded"})
		return
	}
	defer fh.Close()

	data, err := io.ReadAll(io.LimitReader(fh, limit+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: true, Message: "Could not read uploaded file"})
		return
	}

	f, err := h.files.UploadFile(r.Context(), identityOf(sess), services.UploadInput{
		Name:        hdr.Filename,
		Description: r.FormValue("description"),
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		if errors.Is(err, common.ErrorUnauthenticated) {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: true, Message: "No matching user for this session"})
			return
		}
		h.logger.Warn(r.Context(), "upload failed", "email", sess.Email, "err", err)
		writeError(w, err, "Upload failed")
		return
	}

	h.sessions.Update(sess, func(s *session.Session) { s.AddFile(*f) })
	writeSuccess(w, "File uploaded successfully", map[string]any{"file": f})
}

func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	scope, err := services.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, err, "")
		return
	}
	list, err := h.files.ListFiles(r.Context(), identityOf(sess), scope)
	if err != nil {
		writeError(w, err, "Could not list files")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": list})
}

func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		// legacy links carried the blob key as "url"
		key = q.Get("url")
	}

	if err := h.files.DeleteFile(r.Context(), identityOf(sess), q.Get("email"), key); err != nil {
		h.logger.Warn(r.Context(), "delete failed", "email", sess.Email, "key", key, "err", err)
		writeError(w, err, "Delete failed")
		return
	}

	h.sessions.Update(sess, func(s *session.Session) { s.RemoveFile(key) })
	writeSuccess(w, "File deleted successfully", nil)
}
