package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rfpcopilot_backend/app/core"

	"github.com/stretchr/testify/assert"
)

func TestMiddleWare_Unauthorized(t *testing.T) {
	Users = map[string]core.User{}

	called := false
	h := middleWare(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"status":997`)
	assert.Contains(t, w.Body.String(), "please login")
}

func TestMiddleWare_LockedAccount(t *testing.T) {
	Users = map[string]core.User{
		"locked-token": {Model: core.Model{ID: 3}, Username: "locked", IsActive: false},
	}

	called := false
	h := middleWare(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer locked-token")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Account locked")
}

func TestIsOpenRoute(t *testing.T) {
	tests := []struct {
		method string
		uri    string
		open   bool
	}{
		{http.MethodOptions, "/api/v1/projects", true},
		{http.MethodPost, "/api/v1/system/login", true},
		{http.MethodGet, "/api/v1/ws/some-ticket", true},
		{http.MethodGet, "/api/v1/ws/ticket", false},
		{http.MethodGet, "/api/v1/projects", false},
	}

	for _, test := range tests {
		req := httptest.NewRequest(test.method, test.uri, nil)
		assert.Equal(t, test.open, isOpenRoute(req), "%s %s", test.method, test.uri)
	}
}
