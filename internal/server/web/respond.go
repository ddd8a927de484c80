package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/sharebox/internal/common"
)

type errorBody struct {
	Error        bool   `json:"error"`
	Message      string `json:"message"`
	Inconsistent bool   `json:"inconsistent,omitempty"`
	BlobKey      string `json:"blob_key,omitempty"`
	FileID       string `json:"file_id,omitempty"`
	RolledBack   *bool  `json:"rolled_back,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string, extra map[string]any) {
	body := map[string]any{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	if _, ok := common.AsInconsistency(err); ok {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, common.ErrorPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorStorage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides backend detail behind 5xx responses.
func publicMessage(err error, fallback string) string {
	if ie, ok := common.AsInconsistency(err); ok {
		if errors.Is(ie.Kind, common.ErrorPartialDelete) {
			return "File removed from storage but its record could not be deleted"
		}
		if ie.RolledBack {
			return "Upload failed: the file record could not be saved and the stored copy was removed"
		}
		return "File stored but its record could not be saved"
	}
	if statusFor(err) >= http.StatusInternalServerError {
		if errors.Is(err, common.ErrorStorage) {
			return "Storage operation failed"
		}
		return fallback
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	body := errorBody{Error: true, Message: publicMessage(err, fallback)}
	if ie, ok := common.AsInconsistency(err); ok {
		// a rolled back upload left nothing behind to reconcile
		body.Inconsistent = !ie.RolledBack
		body.BlobKey = ie.BlobKey
		body.FileID = ie.FileID
		if errors.Is(ie.Kind, common.ErrorOrphanedBlob) {
			rb := ie.RolledBack
			body.RolledBack = &rb
		}
	}
	writeJSON(w, statusFor(err), body)
}

// loginMessage is the text shown on the login page for a failed login.
func loginMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrorNoUsers):
		return "No Users Found!"
	case errors.Is(err, common.ErrorUserNotFound):
		return "User not found. Please sign up."
	case errors.Is(err, common.ErrorPasswordIncorrect):
		return "Password is incorrect"
	default:
		return "Login failed, please try again later."
	}
}
