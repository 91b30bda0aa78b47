package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"nyumbaBack/internal/models"
	"nyumbaBack/utils"
)

// ImageHandler uploads standalone images ahead of listing creation so
// clients can show previews before submitting the listing itself.
type ImageHandler struct{}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	var images []models.Image
	for _, header := range collectImageFiles(r.MultipartForm, "files", "file") {
		f, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to open uploaded file", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, "Failed to read uploaded file", http.StatusInternalServerError)
			return
		}
		url, err := utils.UploadFileToS3(data, header.Filename, folder, header.Header.Get("Content-Type"))
		if err != nil {
			http.Error(w, "Failed to upload image", http.StatusInternalServerError)
			return
		}
		images = append(images, models.Image{
			Name: header.Filename,
			Path: url,
			Type: "image",
		})
	}
	if len(images) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(images)
}
