package core

import "net/http"

type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Bundle groups the routes of one application area
type Bundle interface {
	GetRoutes() []Route
}
