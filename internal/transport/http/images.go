package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/admin"
	"github.com/aurelia-jewels/catalog-api/internal/blob"
)

// ImagesHandler is the blob-store surface: URL lookup, base64 upload,
// deletion and serving of the stored files.
type ImagesHandler struct {
	store  blob.Storage
	logger hclog.Logger
}

func NewImagesHandler(store blob.Storage, logger hclog.Logger) *ImagesHandler {
	return &ImagesHandler{store: store, logger: logger}
}

// Lookup handles GET /api/images?path=<path>
func (h *ImagesHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: path")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"publicUrl": h.store.PublicURL(path),
	})
}

type uploadRequest struct {
	ProductID   string `json:"productId"`
	FileName    string `json:"fileName"`
	FileData    string `json:"fileData"` // base64
	ContentType string `json:"contentType"`
}

// Upload handles POST /api/images
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.ProductID == "":
		respondError(w, http.StatusBadRequest, "Missing required field: productId")
		return
	case req.FileName == "":
		respondError(w, http.StatusBadRequest, "Missing required field: fileName")
		return
	case req.FileData == "":
		respondError(w, http.StatusBadRequest, "Missing required field: fileData")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		respondError(w, http.StatusBadRequest, "fileData is not valid base64")
		return
	}

	url, err := h.store.Save(admin.ImagePath(req.ProductID, req.FileName), bytes.NewReader(data))
	if err != nil {
		h.logger.Error("Unable to save image", "product_id", req.ProductID,
			"file", req.FileName, "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to save image")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"publicUrl": url})
}

// Delete handles DELETE /api/images?url=<fullUrl>. Only URLs inside the
// managed storage namespace are deletable.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		respondError(w, http.StatusBadRequest, "Missing required parameter: url")
		return
	}

	path, ok := h.store.ParseURL(url)
	if !ok {
		respondError(w, http.StatusBadRequest, "URL does not match the storage path pattern")
		return
	}

	if err := h.store.Delete(path); err != nil {
		h.logger.Error("Unable to delete image", "path", path, "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to delete image")
		return
	}

	respondSuccess(w)
}

// Serve handles GET /images/{path}, streaming the stored object with a
// sniffed content type.
func (h *ImagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	file, err := h.store.Open(path)
	if err != nil {
		respondError(w, http.StatusNotFound, "Image not found")
		return
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("Unable to write image to response", "path", path, "error", err)
	}
}

// sniffContentType determines the MIME type from the file's leading bytes.
func sniffContentType(file *os.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}
