package handlers

import (
	"mime/multipart"
	"testing"
)

func TestGatherImagesFromForm(t *testing.T) {
	t.Run("nil form", func(t *testing.T) {
		images, present, err := gatherImagesFromForm(nil, "images")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if present || images != nil {
			t.Errorf("expected absent for nil form, got present=%v images=%v", present, images)
		}
	})

	t.Run("json array", func(t *testing.T) {
		form := &multipart.Form{Value: map[string][]string{
			"images": {`[{"name":"a.jpg","path":"/img/a.jpg","type":"image"},{"path":"/img/b.jpg"}]`},
		}}
		images, present, err := gatherImagesFromForm(form, "images")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !present {
			t.Fatal("expected present")
		}
		if len(images) != 2 {
			t.Fatalf("got %d images, want 2", len(images))
		}
		if images[1].Name != "b.jpg" {
			t.Errorf("name not derived from path: %q", images[1].Name)
		}
		if images[1].Type != "image" {
			t.Errorf("type not defaulted: %q", images[1].Type)
		}
	})

	t.Run("single object", func(t *testing.T) {
		form := &multipart.Form{Value: map[string][]string{
			"images": {`{"name":"c.jpg","path":"/img/c.jpg"}`},
		}}
		images, present, err := gatherImagesFromForm(form, "images")
		if err != nil || !present || len(images) != 1 {
			t.Fatalf("got (%v, %v, %v), want one image", images, present, err)
		}
	})

	t.Run("bare link", func(t *testing.T) {
		form := &multipart.Form{Value: map[string][]string{
			"images": {"https://cdn.example.com/photos/house.png"},
		}}
		images, _, err := gatherImagesFromForm(form, "images")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(images) != 1 || images[0].Type != "link" {
			t.Fatalf("bare link not handled: %+v", images)
		}
		if images[0].Name != "house.png" {
			t.Errorf("name = %q, want house.png", images[0].Name)
		}
	})

	t.Run("empty placeholder values", func(t *testing.T) {
		form := &multipart.Form{Value: map[string][]string{
			"images": {"", "null", "undefined"},
		}}
		images, present, err := gatherImagesFromForm(form, "images")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !present {
			t.Fatal("field was sent, expected present")
		}
		if len(images) != 0 {
			t.Errorf("got %d images, want 0", len(images))
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		form := &multipart.Form{Value: map[string][]string{
			"images": {`[{"broken"`},
		}}
		if _, _, err := gatherImagesFromForm(form, "images"); err == nil {
			t.Fatal("expected decode error")
		}
	})
}
