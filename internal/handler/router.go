package handler

import (
	"log"
	"net/http"
	"strconv"

	"catalog-api-server/internal/config"
	"catalog-api-server/internal/domain"
	"catalog-api-server/internal/middleware"
	"catalog-api-server/internal/policy"
	"catalog-api-server/pkg/response"

	"github.com/gorilla/mux"
)

// ProductResource routes granularly: every operation has its own path.
type ProductResource = Resource[string, domain.ProductRequest, domain.Product]

// PostResource routes combined: one collection path and one item path
// multiplex operations by method.
type PostResource = Resource[int64, domain.PostRequest, domain.Post]

func NewProductResource(svc Service[string, domain.ProductRequest, domain.Product]) *ProductResource {
	return NewResource("product", "slug", svc, policy.Products(), func(raw string) (string, error) {
		return raw, nil
	})
}

func NewPostResource(svc Service[int64, domain.PostRequest, domain.Post]) *PostResource {
	return NewResource("post", "id", svc, policy.Posts(), func(raw string) (int64, error) {
		return strconv.ParseInt(raw, 10, 64)
	})
}

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	Auth       *AuthHandler
	Products   *ProductResource
	Posts      *PostResource
	Resolver   middleware.IdentityResolver
	RequestLog *log.Logger
	CORS       config.CORSConfig
}

// NewRouter builds the full route table. Resources mount under /api; an
// unmatched path yields 404 and a matched path with the wrong method
// yields 405. The 405 comes from catch-all fallback routes registered
// after the real ones: mux forgets a method mismatch once it moves on
// to a sibling route, so its MethodNotAllowedHandler never fires here.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.LoggerMiddleware(deps.RequestLog))
	r.Use(middleware.CORSMiddleware(
		deps.CORS.AllowedOrigins,
		deps.CORS.AllowedMethods,
		deps.CORS.AllowedHeaders,
	))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.IdentityMiddleware(deps.Resolver))

	api.HandleFunc("/token", deps.Auth.Token).Methods("POST", "OPTIONS")
	api.HandleFunc("/token/refresh", deps.Auth.Refresh).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/register", deps.Auth.Register).Methods("POST", "OPTIONS")

	// Products: granular style, one route per operation, slug-keyed.
	api.HandleFunc("/products/", deps.Products.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/products/create", deps.Products.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/products/retrieve/{slug:[-a-zA-Z0-9_]+}", deps.Products.Retrieve).Methods("GET", "OPTIONS")
	api.HandleFunc("/products/update/{slug:[-a-zA-Z0-9_]+}", deps.Products.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/products/destroy/{slug:[-a-zA-Z0-9_]+}", deps.Products.Destroy).Methods("DELETE", "OPTIONS")

	// Posts: combined style, id-keyed.
	api.HandleFunc("/posts/", deps.Posts.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/posts/", deps.Posts.Create).Methods("POST", "OPTIONS")
	api.HandleFunc("/posts/{id:[0-9]+}", deps.Posts.Retrieve).Methods("GET", "OPTIONS")
	api.HandleFunc("/posts/{id:[0-9]+}", deps.Posts.Update).Methods("PUT", "OPTIONS")
	api.HandleFunc("/posts/{id:[0-9]+}", deps.Posts.Destroy).Methods("DELETE", "OPTIONS")

	// Per-path fallbacks so a known path hit with the wrong method gets
	// 405 instead of 404.
	for _, path := range []string{
		"/token",
		"/token/refresh",
		"/auth/register",
		"/products/",
		"/products/create",
		"/products/retrieve/{slug:[-a-zA-Z0-9_]+}",
		"/products/update/{slug:[-a-zA-Z0-9_]+}",
		"/products/destroy/{slug:[-a-zA-Z0-9_]+}",
		"/posts/",
		"/posts/{id:[0-9]+}",
	} {
		api.HandleFunc(path, methodNotAllowedHandler)
	}

	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/", rootHandler).Methods("GET")
	r.HandleFunc("/health", methodNotAllowedHandler)
	r.HandleFunc("/", methodNotAllowedHandler)

	return r
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	response.MethodNotAllowed(w, r.Method)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"catalog-api-server"}`))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message":"Products & Posts API","version":"1.0.0","endpoints":{"/api/token":"POST","/api/token/refresh":"POST","/api/products/":"GET","/api/posts/":"GET"}}`))
}
