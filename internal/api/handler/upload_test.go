package handler

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartPicture(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("picture", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestReadPicture(t *testing.T) {
	t.Run("reads the picture field", func(t *testing.T) {
		body, contentType := multipartPicture(t, "view.jpg", []byte("img-bytes"))
		req := httptest.NewRequest("PUT", "/room/upload_picture/room-1", body)
		req.Header.Set("Content-Type", contentType)

		filename, data, _, err := readPicture(httptest.NewRecorder(), req)
		require.NoError(t, err)
		assert.Equal(t, "view.jpg", filename)
		assert.Equal(t, []byte("img-bytes"), data)
	})

	t.Run("rejects a body over the size cap", func(t *testing.T) {
		body, contentType := multipartPicture(t, "huge.jpg", bytes.Repeat([]byte("x"), maxUploadBytes+1))
		req := httptest.NewRequest("PUT", "/room/upload_picture/room-1", body)
		req.Header.Set("Content-Type", contentType)

		_, _, _, err := readPicture(httptest.NewRecorder(), req)
		assert.Error(t, err)
	})

	t.Run("missing field", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.Close())
		req := httptest.NewRequest("PUT", "/room/upload_picture/room-1", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		_, _, _, err := readPicture(httptest.NewRecorder(), req)
		assert.Error(t, err)
	})
}
