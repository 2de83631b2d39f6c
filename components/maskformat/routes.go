package maskformat

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Mux is the subset of *http.ServeMux the component registers against.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the list route under basePath. The format route is
// FormatPath of the same arguments.
func MountPath(basePath string, fns ...OptionFn) string {
	list, _ := routesFor(basePath, NewOptions(fns...).RoutePath)
	return list
}

// FormatPath returns the format route under basePath.
func FormatPath(basePath string, fns ...OptionFn) string {
	_, format := routesFor(basePath, NewOptions(fns...).RoutePath)
	return format
}

// RegisterRoutes registers the list and format routes under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers both routes with a single handler and
// returns the list route pattern.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("maskformat: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	list, format := routesFor(basePath, opts.RoutePath)
	handler := HandlerWithOptions(opts)
	mux.Handle(list, handler)
	mux.Handle(format, handler)
	return list, nil
}

// routesFor joins basePath and routePath into an absolute, slash-clean list
// route and derives the format route from it, so a root mount yields "/" and
// "/format".
func routesFor(basePath, routePath string) (list, format string) {
	list = path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
	return list, path.Join(list, FormatRoute)
}
