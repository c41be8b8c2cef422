package router

import (
	"net/url"
	"strconv"
	"strings"
)

// Router is what a view may ask of the active route.
type Router interface {
	CurrentParam(name string) string
	Navigate(path string)
}

const (
	ListPath      = "/"
	DetailPattern = "/pokemon/{id}"
	BackPattern   = "/pokemon/{id}/back"
	IdParam       = "id"
	detailPrefix  = "/pokemon/"
)

type RouteName int

const (
	RouteList RouteName = iota
	RouteDetail
)

type Route struct {
	Name   RouteName
	Path   string
	Params map[string]string
}

func DetailPath(id int) string {
	return detailPrefix + strconv.Itoa(id)
}

func BackPath(param string) string {
	return detailPrefix + url.PathEscape(param) + "/back"
}

// Match resolves a client-side path against the route table.
func Match(path string) (Route, bool) {
	if path == "" || path == ListPath {
		return Route{Name: RouteList, Path: ListPath, Params: map[string]string{}}, true
	}
	if !strings.HasPrefix(path, detailPrefix) {
		return Route{}, false
	}
	param := strings.TrimSuffix(strings.TrimPrefix(path, detailPrefix), "/")
	if param == "" || strings.Contains(param, "/") {
		return Route{}, false
	}
	if unescaped, err := url.PathUnescape(param); err == nil {
		param = unescaped
	}
	return Route{
		Name:   RouteDetail,
		Path:   path,
		Params: map[string]string{IdParam: param},
	}, true
}
