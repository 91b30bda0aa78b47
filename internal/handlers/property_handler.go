package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/services"
	"nyumbaBack/utils"
)

type PropertyHandler struct {
	Service *services.PropertyService
}

// CreateProperty accepts a multipart form: listing fields as a JSON "payload"
// value, image files under "files" and/or pre-uploaded image descriptors
// under "images".
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	prop, err := decodePropertyForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prop.UserID = userIDFromContext(r)

	created, err := h.Service.CreateProperty(r.Context(), prop)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoListingSlots):
			http.Error(w, "No listing slots, subscription required", http.StatusPaymentRequired)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Only providers can publish listings", http.StatusForbidden)
		case isForeignKeyConstraintError(err):
			http.Error(w, "Unknown city", http.StatusBadRequest)
		default:
			http.Error(w, "Failed to create property", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func decodePropertyForm(r *http.Request) (models.Property, error) {
	var prop models.Property

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return prop, errors.New("invalid multipart form")
		}
		payload := r.FormValue("payload")
		if payload == "" {
			return prop, errors.New("payload field missing")
		}
		if err := json.Unmarshal([]byte(payload), &prop); err != nil {
			return prop, errors.New("invalid payload json")
		}

		images, present, err := gatherImagesFromForm(r.MultipartForm, "images")
		if err != nil {
			return prop, err
		}
		if present {
			prop.Images = images
		}
		uploaded, err := uploadImageFiles(r.MultipartForm, "properties")
		if err != nil {
			return prop, err
		}
		prop.Images = append(prop.Images, uploaded...)
		return prop, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
		return prop, errors.New("invalid body")
	}
	return prop, nil
}

// uploadImageFiles pushes each "files" part to S3 and returns image rows
// pointing at the public URLs.
func uploadImageFiles(form *multipart.Form, folder string) ([]models.Image, error) {
	var images []models.Image
	for _, header := range collectImageFiles(form, "files", "file") {
		f, err := header.Open()
		if err != nil {
			return nil, errors.New("failed to open uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.New("failed to read uploaded file")
		}
		url, err := utils.UploadFileToS3(data, header.Filename, folder, header.Header.Get("Content-Type"))
		if err != nil {
			return nil, errors.New("failed to upload image")
		}
		images = append(images, models.Image{
			Name: header.Filename,
			Path: url,
			Type: "image",
		})
	}
	return images, nil
}

func (h *PropertyHandler) GetPropertyByID(w http.ResponseWriter, r *http.Request) {
	prop, err := h.Service.GetPropertyByID(r.Context(), getIntParam(r, "id"), userIDFromContext(r), roleFromContext(r))
	if err != nil {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(prop)
}

func (h *PropertyHandler) GetMyProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Service.GetPropertiesByUserID(r.Context(), userIDFromContext(r))
	if err != nil {
		http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(props)
}

func (h *PropertyHandler) GetFilteredProperties(w http.ResponseWriter, r *http.Request) {
	var req models.PropertyFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	req.UserID = userIDFromContext(r)

	resp, err := h.Service.GetFilteredProperties(r.Context(), req)
	if err != nil {
		http.Error(w, "Failed to fetch properties", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resp)
}

func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	prop, err := decodePropertyForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	prop.ID = getIntParam(r, "id")
	prop.UserID = userIDFromContext(r)

	updated, err := h.Service.UpdateProperty(r.Context(), prop)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "Not your listing", http.StatusForbidden)
		default:
			http.Error(w, "Failed to update property", http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *PropertyHandler) ArchiveProperty(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *PropertyHandler) UnarchiveProperty(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *PropertyHandler) setArchived(w http.ResponseWriter, r *http.Request, archived bool) {
	err := h.Service.SetArchived(r.Context(), getIntParam(r, "id"), userIDFromContext(r), archived)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoListingSlots):
			http.Error(w, "No listing slots, subscription required", http.StatusPaymentRequired)
		case errors.Is(err, models.ErrPropertyNotFound):
			http.Error(w, "Property not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to update property", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	isAdmin := roleFromContext(r) == models.RoleAdmin
	err := h.Service.DeleteProperty(r.Context(), getIntParam(r, "id"), userIDFromContext(r), isAdmin)
	if err != nil {
		if errors.Is(err, models.ErrPropertyNotFound) {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete property", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
