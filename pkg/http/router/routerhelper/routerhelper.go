package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. httprouter routes sharing a path prefix
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(path string) *RouteGroup {
	return &RouteGroup{router: g.router, prefix: g.prefix + path}
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodGet, g.prefix+path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodPost, g.prefix+path, handle)
}

func (g *RouteGroup) PUT(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodPut, g.prefix+path, handle)
}

func (g *RouteGroup) DELETE(path string, handle httprouter.Handle) {
	g.router.Handle(http.MethodDelete, g.prefix+path, handle)
}
