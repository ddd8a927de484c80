// Package common contains shared constants and sentinel errors used across
// sharebox components.
package common

// SessionCookieName is the name of the cookie carrying the signed session id.
const SessionCookieName = "sharebox_session"

// MaxUploadBytes is the default upload size limit (10 MiB).
const MaxUploadBytes int64 = 10 * 1024 * 1024

// Record collections.
const (
	UsersCollection = "users"
	FilesCollection = "files"
)
