package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRequest(t *testing.T) {
	h := http.Header{}
	assert.False(t, IsRequest(h))

	h.Set("HX-Request", "true")
	assert.True(t, IsRequest(h))

	// Значение не важно, только наличие.
	h.Set("HX-Request", "")
	assert.True(t, IsRequest(h))
}

func TestTargetIs(t *testing.T) {
	h := http.Header{}
	assert.False(t, TargetIs(h, RegionUsersTable))

	h.Set("HX-Target", "users-table")
	assert.True(t, TargetIs(h, RegionUsersTable))
	assert.False(t, TargetIs(h, RegionUserDetail))

	h.Set("HX-Target", "users-table-2")
	assert.False(t, TargetIs(h, RegionUsersTable))
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	Redirect(rec, "/users")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("HX-Redirect"))
}
