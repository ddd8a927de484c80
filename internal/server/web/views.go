package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	viewIndex     = "index.html"
	viewAddUser   = "add_user.html"
	viewDashboard = "dashboard.html"
	viewAdmin     = "admin.html"
)

type pageData struct {
	Title       string
	UserName    string
	Email       string
	Admin       bool
	Message     string
	Users       []models.User
	Files       []models.File
	MaxUploadMB int64
}

type views struct {
	t *template.Template
}

func parseViews() (*views, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &views{t: t}, nil
}

// render executes into a buffer first so a template error never leaves a
// half-written page behind.
func (v *views) render(w http.ResponseWriter, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := v.t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
