package handlers

import (
	"net/http"
	"strconv"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func getIntParam(r *http.Request, name string) int {
	n, _ := strconv.Atoi(getParam(r, name))
	return n
}

// userIDFromContext reads the authenticated user id placed there by the
// JWT middleware.
func userIDFromContext(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

func roleFromContext(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
