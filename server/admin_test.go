package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) loginAsAdmin(t *testing.T, username string) *model.User {
	t.Helper()
	user := e.signupAndLogin(t, username)
	require.NoError(t, e.db.Model(user).Update("is_admin", true).Error)
	return user
}

func (e *testEnv) adminJSON(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, e.ts.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestAdminRequiresOperator(t *testing.T) {
	e := newTestEnv(t)

	// Anonymous and regular users both get a plain 404.
	status, _ := e.adminJSON(t, "GET", "/admin/entities/post", nil)
	assert.Equal(t, http.StatusNotFound, status)

	e.signupAndLogin(t, "regular")
	status, _ = e.adminJSON(t, "GET", "/admin/entities/post", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminListAndSearchPosts(t *testing.T) {
	e := newTestEnv(t)
	author := utils.TestCreateUserAndValidate(t, e.db, "alice", "password")
	group := utils.TestCreateGroupAndValidate(t, e.db, "Travel", "travel", "notes")
	utils.TestCreatePostAndValidate(t, e.db, author, group, "the grand canyon was empty")
	utils.TestCreatePostAndValidate(t, e.db, author, nil, "unrelated entry")
	e.loginAsAdmin(t, "op")

	status, body := e.adminJSON(t, "GET", "/admin/entities/post?q=canyon", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	rows := data["rows"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	// Listed text is the truncated string representation.
	assert.Equal(t, "the grand canyo", row["text"])
	assert.Equal(t, "alice", row["author"])
	assert.Equal(t, "Travel", row["group"])

	columns := data["columns"].([]interface{})
	assert.Equal(t, []interface{}{"pk", "text", "pub_date", "author", "group"}, columns)

	status, _ = e.adminJSON(t, "GET", "/admin/entities/banana", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminInlineEdit(t *testing.T) {
	e := newTestEnv(t)
	author := utils.TestCreateUserAndValidate(t, e.db, "alice", "password")
	utils.TestCreateGroupAndValidate(t, e.db, "Travel", "travel", "notes")
	post := utils.TestCreatePostAndValidate(t, e.db, author, nil, "groupless post")
	e.loginAsAdmin(t, "op")

	// Posts only allow editing their group.
	status, _ := e.adminJSON(t, "POST", "/admin/entities/post/"+post.Id,
		map[string]string{"field": "group", "value": "travel"})
	require.Equal(t, http.StatusOK, status)

	var updated model.Post
	require.NoError(t, e.db.Preload("Group").Where("id = ?", post.Id).First(&updated).Error)
	require.NotNil(t, updated.Group)
	assert.Equal(t, "travel", updated.Group.Slug)

	// A non-editable field is rejected.
	status, _ = e.adminJSON(t, "POST", "/admin/entities/post/"+post.Id,
		map[string]string{"field": "text", "value": "rewritten"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAdminCacheClear(t *testing.T) {
	e := newTestEnv(t)
	author := utils.TestCreateUserAndValidate(t, e.db, "alice", "password")
	post := utils.TestCreatePostAndValidate(t, e.db, author, nil, "cached then purged")
	e.loginAsAdmin(t, "op")

	status, body := e.getBody(t, "/")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "cached then purged")

	require.NoError(t, e.db.Delete(&model.Post{}, "id = ?", post.Id).Error)

	status, _ = e.adminJSON(t, "POST", "/admin/cache/clear", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = e.getBody(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "cached then purged")
}
