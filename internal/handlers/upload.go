package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/beastgym/apiserver/internal/storage"
)

const (
	maxImageMemory = 8 << 20
	maxImageBytes  = 8 << 20
	formFieldImage = "image"
)

// UploadHandler proxies member and trainer photo uploads to object
// storage.
type UploadHandler struct {
	images *storage.ImageStore
}

// NewUploadHandler constructs a handler for the provided image store.
func NewUploadHandler(images *storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// UploadRouter registers image upload routes on the given router.
// Reads are public so photo URLs can be embedded; mutations are guarded
// by the supplied middleware chain.
func UploadRouter(r chi.Router, images *storage.ImageStore, guards ...func(http.Handler) http.Handler) {
	handler := NewUploadHandler(images)

	r.With(guards...).Post("/", handler.UploadImage)
	r.Get("/*", handler.GetImage)
	r.With(guards...).Delete("/*", handler.DeleteImage)
}

// UploadResponse is the payload returned after a successful upload.
type UploadResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	data, contentType, err := parseImageFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := h.images.PutImage(r.Context(), bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			writeError(w, http.StatusBadRequest, "unsupported image type")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{Success: true, Key: key})
}

func (h *UploadHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if strings.TrimSpace(key) == "" {
		writeError(w, http.StatusBadRequest, "image key is required")
		return
	}

	reader, err := h.images.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "image not found")
		return
	}
	defer reader.Close()

	if _, err := io.Copy(w, reader); err != nil {
		return
	}
}

func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if strings.TrimSpace(key) == "" {
		writeError(w, http.StatusBadRequest, "image key is required")
		return
	}

	if err := h.images.Delete(r.Context(), key); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseImageFile(r *http.Request) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", errors.New("missing form data")
	}

	files := r.MultipartForm.File[formFieldImage]
	if len(files) == 0 {
		return nil, "", errors.New("image file is required")
	}
	if len(files) > 1 {
		return nil, "", errors.New("only one image file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", errors.New("failed to read image file")
	}

	data, err := readFileLimited(file, maxImageBytes)
	_ = file.Close()
	if err != nil {
		return nil, "", err
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
