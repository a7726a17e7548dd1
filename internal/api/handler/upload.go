package handler

import (
	"io"
	"net/http"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// readPicture extracts the uploaded file from the "picture" multipart field.
// The body is capped before parsing; ParseMultipartForm's argument only sets
// the in-memory threshold and would let oversized uploads spill to disk.
func readPicture(w http.ResponseWriter, r *http.Request) (filename string, data []byte, contentType string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, "", err
	}
	file, header, err := r.FormFile("picture")
	if err != nil {
		return "", nil, "", err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return "", nil, "", err
	}

	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return header.Filename, data, contentType, nil
}
