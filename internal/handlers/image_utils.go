package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"nyumbaBack/internal/models"
)

// collectImageFiles gathers uploaded files across the given form keys.
func collectImageFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// gatherImagesFromForm reads string values out of a multipart form and decodes
// them into images. Clients send either a JSON array, single JSON objects or
// bare URL strings. Returns the images, whether the field was present, and a
// decode error if the payload was malformed.
func gatherImagesFromForm(form *multipart.Form, keys ...string) ([]models.Image, bool, error) {
	if form == nil {
		return nil, false, nil
	}

	var rawValues []string
	for _, key := range keys {
		if values, ok := form.Value[key]; ok {
			rawValues = append(rawValues, values...)
		}
	}
	if len(rawValues) == 0 {
		return nil, false, nil
	}

	var result []models.Image
	for _, raw := range rawValues {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "null" || raw == "undefined" {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "["):
			var arr []models.Image
			if err := json.Unmarshal([]byte(raw), &arr); err != nil {
				return nil, false, fmt.Errorf("failed to decode image array: %w", err)
			}
			for i := range arr {
				normalizeImage(&arr[i])
			}
			result = append(result, arr...)
		case strings.HasPrefix(raw, "{"):
			var item models.Image
			if err := json.Unmarshal([]byte(raw), &item); err != nil {
				return nil, false, fmt.Errorf("failed to decode image object: %w", err)
			}
			normalizeImage(&item)
			result = append(result, item)
		default:
			result = append(result, models.Image{
				Name: path.Base(raw),
				Path: raw,
				Type: "link",
			})
		}
	}
	return result, true, nil
}

func normalizeImage(img *models.Image) {
	img.Path = strings.TrimSpace(img.Path)
	if img.Name == "" && img.Path != "" {
		img.Name = path.Base(img.Path)
	}
	if img.Type == "" {
		img.Type = "image"
	}
}
