package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"catalog-api-server/internal/middleware"
	"catalog-api-server/internal/policy"
	"catalog-api-server/internal/repository"
	"catalog-api-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Service is the operation surface a resource exposes to its handler.
// K is the external lookup key, Req the write payload, R the record.
type Service[K comparable, Req any, R any] interface {
	List(ctx context.Context) ([]*R, error)
	Get(ctx context.Context, key K) (*R, error)
	Create(ctx context.Context, req *Req) (*R, error)
	Update(ctx context.Context, key K, req *Req) (*R, error)
	Delete(ctx context.Context, key K) error
}

// Resource is a generic HTTP handler for one resource type. Each method
// runs the same fixed sequence: resolve identity, authorize against the
// policy table, validate the payload on writes, invoke the service, and
// serialize. One instance can be routed granularly (one route per
// operation) or combined (one route multiplexing methods); both styles use
// the same methods.
type Resource[K comparable, Req any, R any] struct {
	name     string
	keyVar   string
	svc      Service[K, Req, R]
	policy   policy.Table
	parseKey func(string) (K, error)
	validate *validator.Validate
}

func NewResource[K comparable, Req any, R any](
	name, keyVar string,
	svc Service[K, Req, R],
	table policy.Table,
	parseKey func(string) (K, error),
) *Resource[K, Req, R] {
	return &Resource[K, Req, R]{
		name:     name,
		keyVar:   keyVar,
		svc:      svc,
		policy:   table,
		parseKey: parseKey,
		validate: validator.New(),
	}
}

func (h *Resource[K, Req, R]) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.OpList) {
		return
	}

	recs, err := h.svc.List(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.Success(w, recs)
}

func (h *Resource[K, Req, R]) Create(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.OpCreate) {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.Created(w, rec)
}

func (h *Resource[K, Req, R]) Retrieve(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.OpRetrieve) {
		return
	}

	key, ok := h.key(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), key)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.Success(w, rec)
}

func (h *Resource[K, Req, R]) Update(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.OpUpdate) {
		return
	}

	key, ok := h.key(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Update(r.Context(), key, req)
	if err != nil {
		h.storeError(w, err)
		return
	}

	response.Success(w, rec)
}

func (h *Resource[K, Req, R]) Destroy(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, policy.OpDestroy) {
		return
	}

	key, ok := h.key(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), key); err != nil {
		h.storeError(w, err)
		return
	}

	response.NoContent(w)
}

// authorize evaluates the policy table for the resolved identity. A denial
// writes the response and short-circuits the request.
func (h *Resource[K, Req, R]) authorize(w http.ResponseWriter, r *http.Request, op policy.Operation) bool {
	identity := middleware.GetIdentity(r)

	switch h.policy.Authorize(identity, op) {
	case policy.Allow:
		return true
	case policy.DenyUnauthenticated:
		response.Unauthorized(w, "Authentication credentials were not provided")
		return false
	default:
		response.Forbidden(w, "You do not have permission to perform this action")
		return false
	}
}

func (h *Resource[K, Req, R]) key(w http.ResponseWriter, r *http.Request) (K, bool) {
	var zero K

	raw, ok := mux.Vars(r)[h.keyVar]
	if !ok || raw == "" {
		response.NotFound(w, h.name+" not found")
		return zero, false
	}

	key, err := h.parseKey(raw)
	if err != nil {
		response.NotFound(w, h.name+" not found")
		return zero, false
	}

	return key, true
}

func (h *Resource[K, Req, R]) decode(w http.ResponseWriter, r *http.Request) (*Req, bool) {
	var req Req
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return nil, false
	}

	if err := h.validate.Struct(req); err != nil {
		response.ValidationError(w, "Invalid "+h.name+" payload", validationFields(err))
		return nil, false
	}

	return &req, true
}

func (h *Resource[K, Req, R]) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(w, h.name+" not found")
	case errors.Is(err, repository.ErrConflict):
		response.Conflict(w, h.name+" with this "+h.keyVar+" already exists")
	default:
		response.InternalError(w, "Failed to process "+h.name+" request")
	}
}

// validationFields flattens validator errors into per-field messages.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			if fe.Tag() == "required" {
				fields[name] = "this field is required"
			} else {
				fields[name] = "failed validation on '" + fe.Tag() + "'"
			}
		}
	}

	return fields
}
