package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/blobstore"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/files"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/users"
	"github.com/dmitrijs2005/sharebox/internal/server/services"
	"github.com/dmitrijs2005/sharebox/internal/server/session"
)

const (
	testAdminEmail    = "admin@gmail.com"
	testAdminPassword = "admin-secret"
	testMaxUpload     = 1024
)

type testEnv struct {
	srv   *httptest.Server
	blobs *blobstore.MemoryStore
	users *users.MemoryRepository
	files *files.MemoryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithBlobs(t, blobstore.NewMemoryStore("https://cdn.test"), false)
}

// newTestEnvWithBlobs wires blobs as the blob store; serve also mounts it
// under /blobs/.
func newTestEnvWithBlobs(t *testing.T, blobs *blobstore.MemoryStore, serve bool) *testEnv {
	t.Helper()

	env := &testEnv{
		blobs: blobs,
		users: users.NewMemoryRepository(),
		files: files.NewMemoryRepository(),
	}
	log := logging.Nop()
	userSvc := services.NewUserService(env.users, log)
	authSvc := services.NewAuthService(env.users, env.files, testAdminEmail, testAdminPassword, log)
	fileSvc := services.NewFileService(authSvc, env.files, env.blobs, testMaxUpload, log)
	sessions := session.NewManager(session.NewStore(time.Hour), "test-secret", time.Hour)

	h, err := NewHandler(userSvc, authSvc, fileSvc, sessions, log)
	require.NoError(t, err)
	if serve {
		h.ServeBlobs(blobs)
	}

	env.srv = httptest.NewServer(h.Routes())
	t.Cleanup(env.srv.Close)
	return env
}

// client returns a browser-like client with its own cookie jar. Redirects
// are not followed so tests can assert on them.
func (e *testEnv) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (e *testEnv) url(path string) string { return e.srv.URL + path }

func do(t *testing.T, c *http.Client, method, target string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postForm(t *testing.T, c *http.Client, target string, vals url.Values) *http.Response {
	t.Helper()
	return do(t, c, http.MethodPost, target, strings.NewReader(vals.Encode()), "application/x-www-form-urlencoded")
}

func sendJSON(t *testing.T, c *http.Client, method, target string, v any) *http.Response {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return do(t, c, method, target, bytes.NewReader(b), "application/json")
}

func upload(t *testing.T, c *http.Client, target, field, name string, data []byte, description string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	if description != "" {
		require.NoError(t, mw.WriteField("description", description))
	}
	require.NoError(t, mw.Close())
	return do(t, c, http.MethodPost, target, &buf, mw.FormDataContentType())
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func (e *testEnv) signUp(t *testing.T, name, email, password string) {
	t.Helper()
	resp := postForm(t, e.client(t), e.url("/api/users"), url.Values{"name": {name}, "email": {email}, "password": {password}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
}

// login returns a client holding a live session.
func (e *testEnv) login(t *testing.T, email, password string) *http.Client {
	t.Helper()
	c := e.client(t)
	resp := postForm(t, c, e.url("/login"), url.Values{"email": {email}, "password": {password}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, readBody(t, resp), "Log out")
	return c
}
