package utils

import (
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	a := ObjectName("photo.jpg")
	b := ObjectName("photo.jpg")
	if a == b {
		t.Errorf("two uploads of %q got the same key %q", "photo.jpg", a)
	}
	if !strings.HasSuffix(a, "_photo.jpg") {
		t.Errorf("key %q does not keep the original name", a)
	}
	if got := ObjectName("../../etc/passwd"); !strings.HasSuffix(got, "_passwd") || strings.Contains(got, "..") {
		t.Errorf("key %q keeps path components", got)
	}
}
