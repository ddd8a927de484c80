// Package session keeps login state in process memory. The browser only
// holds a signed token naming its session id.
package session

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is one logged-in browser. Users and Files are the last snapshot
// shown on the dashboard.
type Session struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	Users     []models.User
	Files     []models.File
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool { return s.Role == RoleAdmin }

// AddFile appends f to the cached file list.
func (s *Session) AddFile(f models.File) {
	s.Files = append(s.Files, f)
}

// RemoveFile drops the cached entry with the given blob key.
func (s *Session) RemoveFile(blobKey string) {
	s.Files = slices.DeleteFunc(s.Files, func(f models.File) bool { return f.BlobKey == blobKey })
}

func (s *Session) clone() *Session {
	c := *s
	c.Users = slices.Clone(s.Users)
	c.Files = slices.Clone(s.Files)
	return &c
}
