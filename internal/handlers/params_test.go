package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestGetParam(t *testing.T) {
	t.Run("colon prefixed", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties?:id=42", nil)
		if got := getParam(r, "id"); got != "42" {
			t.Errorf("getParam = %q, want 42", got)
		}
	})

	t.Run("plain query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties?id=7", nil)
		if got := getParam(r, "id"); got != "7" {
			t.Errorf("getParam = %q, want 7", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/properties", nil)
		if got := getParam(r, "id"); got != "" {
			t.Errorf("getParam = %q, want empty", got)
		}
	})

	t.Run("nil request", func(t *testing.T) {
		if got := getParam(nil, "id"); got != "" {
			t.Errorf("getParam = %q, want empty", got)
		}
	})
}

func TestGetIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/properties?:id=13", nil)
	if got := getIntParam(r, "id"); got != 13 {
		t.Errorf("getIntParam = %d, want 13", got)
	}

	r = httptest.NewRequest("GET", "/properties?:id=abc", nil)
	if got := getIntParam(r, "id"); got != 0 {
		t.Errorf("getIntParam = %d, want 0 for non-numeric", got)
	}
}
