package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/Luismorlan/blogmux/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *testEnv) postMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", e.ts.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPostCreateWithImage(t *testing.T) {
	e := newTestEnv(t)
	e.signupAndLogin(t, "alice")

	resp := e.postMultipart(t, "/create/",
		map[string]string{"text": "post with a picture"},
		"image", "pic.png", smallPNG(t))
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var post model.Post
	require.NoError(t, e.db.First(&post).Error)
	assert.Equal(t, "post with a picture", post.Text)
	require.NotEmpty(t, post.ImageKey)
	assert.Contains(t, post.ImageKey, ".png")

	// The detail page links the stored image.
	status, body := e.getBody(t, "/posts/"+post.Id+"/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/media/"+post.ImageKey)
}

func TestPostCreateWithBrokenImage(t *testing.T) {
	e := newTestEnv(t)
	e.signupAndLogin(t, "alice")

	resp := e.postMultipart(t, "/create/",
		map[string]string{"text": "broken upload"},
		"image", "not_an_image.png", []byte("certainly not a png"))
	defer resp.Body.Close()

	// Re-rendered form with an image error, nothing persisted.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), e.countPosts(t))
}
