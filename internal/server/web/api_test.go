package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Form(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	resp := postForm(t, c, env.url("/api/users"), url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "password": {"p"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	u, err := env.users.Get(context.Background(), "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.NotEqual(t, "p", u.PasswordHash)
}

func TestCreateUser_JSON(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	resp := sendJSON(t, c, http.MethodPost, env.url("/api/users"), map[string]string{"name": "Ann", "email": "ann@x.com", "password": "p"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@x.com", user["email"])
	assert.NotContains(t, user, "passwordHash")

	resp = sendJSON(t, c, http.MethodPost, env.url("/api/users"), map[string]string{"name": "Ann", "email": "ann@x.com", "password": "p"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, true, decodeJSON(t, resp)["error"])
}

func TestCreateUser_BadInput(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	tests := []struct {
		name string
		resp func() *http.Response
	}{
		{"blank email", func() *http.Response {
			return postForm(t, c, env.url("/api/users"), url.Values{"name": {"Ann"}, "email": {"  "}, "password": {"p"}})
		}},
		{"blank password", func() *http.Response {
			return postForm(t, c, env.url("/api/users"), url.Values{"email": {"ann@x.com"}})
		}},
		{"malformed json", func() *http.Response {
			return do(t, c, http.MethodPost, env.url("/api/users"), bytes.NewBufferString("{"), "application/json")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.resp()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, true, decodeJSON(t, resp)["error"])
		})
	}
}

func TestListUsers_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")

	resp := do(t, env.client(t), http.MethodGet, env.url("/api/users"), nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ann := env.login(t, "ann@x.com", "p")
	resp = do(t, ann, http.MethodGet, env.url("/api/users"), nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := env.login(t, testAdminEmail, testAdminPassword)
	resp = do(t, admin, http.MethodGet, env.url("/api/users"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["users"], 1)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	env.signUp(t, "Bob", "bob@x.com", "q")
	ann := env.login(t, "ann@x.com", "p")

	resp := sendJSON(t, ann, http.MethodPut, env.url("/api/users/ann@x.com"), map[string]string{"newName": "Annie", "newPassword": "p2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, "Annie", body["user"].(map[string]any)["name"])

	resp = sendJSON(t, ann, http.MethodPut, env.url("/api/users/bob@x.com"), map[string]string{"newName": "Robert"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = sendJSON(t, ann, http.MethodPut, env.url("/api/users/ann@x.com"), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the new password works, the old one does not
	c := env.client(t)
	resp = postForm(t, c, env.url("/login"), url.Values{"email": {"ann@x.com"}, "password": {"p"}})
	assert.Contains(t, readBody(t, resp), "Password is incorrect")
	env.login(t, "ann@x.com", "p2")

	admin := env.login(t, testAdminEmail, testAdminPassword)
	resp = postForm(t, admin, env.url("/api/users/nobody@x.com"), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp = sendJSON(t, admin, http.MethodPut, env.url("/api/users/nobody@x.com"), map[string]string{"newName": "N"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = sendJSON(t, admin, http.MethodPut, env.url("/api/users/x"), map[string]string{"email": "bob@x.com", "newName": "Robert"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	ann := env.login(t, "ann@x.com", "p")
	admin := env.login(t, testAdminEmail, testAdminPassword)

	resp := do(t, ann, http.MethodDelete, env.url("/api/users/ann@x.com"), nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, admin, http.MethodDelete, env.url("/api/users/ignored?email=ann@x.com"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeJSON(t, resp)["success"])

	resp = do(t, admin, http.MethodDelete, env.url("/api/users/ann@x.com"), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpload_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	resp := upload(t, env.client(t), env.url("/upload"), "file", "notes.txt", []byte("0123456789"), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, env.blobs.Len())
}

func TestUpload_TooLarge(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	ann := env.login(t, "ann@x.com", "p")

	tests := []struct {
		name string
		size int
	}{
		{"over the file limit", testMaxUpload + 1},
		{"over the body limit", testMaxUpload + int(multipartOverhead) + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := upload(t, ann, env.url("/upload"), "file", "big.bin", make([]byte, tt.size), "")
			assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
			assert.Equal(t, true, decodeJSON(t, resp)["error"])
		})
	}
	assert.Equal(t, 0, env.blobs.Len())
}

func TestUpload_FieldNames(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	ann := env.login(t, "ann@x.com", "p")

	resp := upload(t, ann, env.url("/upload"), "image", "cat.png", []byte("png"), "a cat")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	file := decodeJSON(t, resp)["file"].(map[string]any)
	assert.Equal(t, "cat.png", file["fileName"])
	assert.Equal(t, "a cat", file["fileDesc"])

	resp = upload(t, ann, env.url("/upload"), "attachment", "x.txt", []byte("x"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, env.blobs.Len())
}

func TestUpload_AdminWithoutAccount(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login(t, testAdminEmail, testAdminPassword)

	resp := upload(t, admin, env.url("/upload"), "file", "notes.txt", []byte("x"), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, env.blobs.Len())
}

func TestListFiles_Scopes(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	env.signUp(t, "Bob", "bob@x.com", "q")
	ann := env.login(t, "ann@x.com", "p")
	bob := env.login(t, "bob@x.com", "q")
	admin := env.login(t, testAdminEmail, testAdminPassword)

	upload(t, ann, env.url("/upload"), "file", "a.txt", []byte("a"), "")
	upload(t, bob, env.url("/upload"), "file", "b.txt", []byte("b"), "")

	resp := do(t, ann, http.MethodGet, env.url("/api/files?scope=own"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeJSON(t, resp)["files"], 1)

	resp = do(t, ann, http.MethodGet, env.url("/api/files?scope=all"), nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, ann, http.MethodGet, env.url("/api/files?scope=everything"), nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, admin, http.MethodGet, env.url("/api/files?scope=all"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeJSON(t, resp)["files"], 2)
}

func TestDeleteFile_Authorization(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	env.signUp(t, "Bob", "bob@x.com", "q")
	ann := env.login(t, "ann@x.com", "p")
	bob := env.login(t, "bob@x.com", "q")
	admin := env.login(t, testAdminEmail, testAdminPassword)

	resp := upload(t, ann, env.url("/upload"), "file", "a.txt", []byte("a"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	key := decodeJSON(t, resp)["file"].(map[string]any)["blobKey"].(string)

	target := env.url("/delete-file?" + url.Values{"email": {"ann@x.com"}, "key": {key}}.Encode())

	resp = do(t, bob, http.MethodGet, target, nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, ann, http.MethodGet, env.url("/delete-file?email=ann@x.com&key=uploads/missing"), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, ann, http.MethodGet, env.url("/delete-file"), nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// legacy "url" parameter, deleted by the admin
	resp = do(t, admin, http.MethodGet, env.url("/delete-file?"+url.Values{"email": {"ann@x.com"}, "url": {key}}.Encode()), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.blobs.Len())
}

// Sign up, log in, upload, list, delete, list again, all over HTTP.
func TestAnnScenario(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Ann", "ann@x.com", "p")
	ann := env.login(t, "ann@x.com", "p")

	listOwn := func() []any {
		resp := do(t, ann, http.MethodGet, env.url("/api/files?scope=own"), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decodeJSON(t, resp)["files"].([]any)
	}
	assert.Empty(t, listOwn())

	resp := upload(t, ann, env.url("/upload"), "file", "notes.txt", []byte("0123456789"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	file := body["file"].(map[string]any)
	key := file["blobKey"].(string)
	assert.Equal(t, "notes.txt", file["fileDesc"])
	assert.Equal(t, float64(10), file["sizeBytes"])

	own := listOwn()
	require.Len(t, own, 1)
	assert.Equal(t, "notes.txt", own[0].(map[string]any)["fileName"])

	resp = do(t, ann, http.MethodGet, env.url("/dashboard"), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "notes.txt")

	resp = do(t, ann, http.MethodGet, env.url("/delete-file?"+url.Values{"email": {"ann@x.com"}, "key": {key}}.Encode()), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeJSON(t, resp)["success"])

	assert.Empty(t, listOwn())
	assert.Equal(t, 0, env.blobs.Len())
}
