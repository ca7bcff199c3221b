package form

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postContext(values url.Values) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestPostFormSchema(t *testing.T) {
	schema := PostFormSchema()
	require.Len(t, schema, 3)

	text, ok := schema.FieldByName("text")
	require.True(t, ok)
	assert.Equal(t, FieldTypeText, text.Type)
	assert.Equal(t, "Text", text.Label)
	assert.True(t, text.Required)

	group, ok := schema.FieldByName("group")
	require.True(t, ok)
	assert.Equal(t, FieldTypeSelect, group.Type)
	assert.Equal(t, "Choose a group", group.HelpText)
	assert.False(t, group.Required)

	image, ok := schema.FieldByName("image")
	require.True(t, ok)
	assert.Equal(t, FieldTypeImage, image.Type)
	assert.False(t, image.Required)

	_, ok = schema.FieldByName("author")
	assert.False(t, ok)
}

func TestCommentFormSchema(t *testing.T) {
	schema := CommentFormSchema()
	require.Len(t, schema, 1)
	assert.Equal(t, "text", schema[0].Name)
	assert.Equal(t, FieldTypeText, schema[0].Type)
	assert.True(t, schema[0].Required)
}

func TestCommentFormValidation(t *testing.T) {
	c := postContext(url.Values{"text": {"  nice post  "}})
	f := NewCommentForm(c)
	assert.True(t, f.Validate())
	assert.Equal(t, "nice post", f.Comment().Text)

	c = postContext(url.Values{"text": {"   "}})
	f = NewCommentForm(c)
	assert.False(t, f.Validate())
	assert.Contains(t, f.Errors, "text")
}

func TestPostFormBinding(t *testing.T) {
	c := postContext(url.Values{"text": {"hello"}, "group": {"travel"}})
	f := NewPostForm(c)
	assert.Equal(t, "hello", f.Text)
	assert.Equal(t, "travel", f.GroupSlug)
	assert.Empty(t, f.Errors)
}
