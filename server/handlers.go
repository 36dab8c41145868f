package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	// APIPathPrefix is the prefix of all paths in the API. The root router
	// mounts a sub-router that routes all API requests at this path.
	APIPathPrefix = "/api/v1"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

// EndpointFunc is the shape of a function that handles one API endpoint and
// produces a result ready to be written as an HTTP response.
type EndpointFunc func(req *http.Request) EndpointResult

// Endpoint adapts an EndpointFunc into an http.HandlerFunc, converting any
// panic that escapes the endpoint into an HTTP-500.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		ep(req).writeResponse(w, req)
	}
}

func newRouter(ps *PushdownServer) chi.Router {
	r := chi.NewRouter()

	r.Mount(APIPathPrefix, newAPIRouter(ps))

	return r
}

func newAPIRouter(ps *PushdownServer) chi.Router {
	r := chi.NewRouter()

	r.Mount("/info", newInfoRouter(ps))
	r.HandleFunc("/info/", RedirectNoTrailingSlash)
	r.Mount("/rules", newRulesRouter(ps))
	r.HandleFunc("/rules/", RedirectNoTrailingSlash)
	r.Mount("/checks", newChecksRouter(ps))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonNotFound().writeResponse(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonMethodNotAllowed(r).writeResponse(w, r)
	})

	return r
}

func newInfoRouter(ps *PushdownServer) chi.Router {
	r := chi.NewRouter()

	r.Get("/", Endpoint(ps.doEndpoint_Info_GET))

	return r
}

func newRulesRouter(ps *PushdownServer) chi.Router {
	r := chi.NewRouter()

	r.Get("/", Endpoint(ps.doEndpoint_Rules_GET))

	return r
}

func newChecksRouter(ps *PushdownServer) chi.Router {
	r := chi.NewRouter()

	r.Get("/", Endpoint(ps.doEndpoint_Checks_GET))
	r.Post("/", Endpoint(ps.doEndpoint_Checks_POST))

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", Endpoint(ps.doEndpoint_ChecksID_GET))
		r.Delete("/", Endpoint(ps.doEndpoint_ChecksID_DELETE))
	})
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL
// as the request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	redirection(redirPath).writeResponse(w, req)
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicRecovered bool) {
	if panicErr := recover(); panicErr != nil {
		textErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).writeResponse(w, req)
		return true
	}
	return false
}
