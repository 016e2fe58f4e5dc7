// Package repository holds the storage contracts and their in-memory and
// CouchDB implementations. Every backend provides the same minimal
// capability set so services never see which one is wired.
package repository

import (
	"context"
	"errors"

	"catalog-api-server/internal/domain"
)

var (
	// ErrNotFound: no record exists at the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrConflict: the insert or replace would violate a uniqueness
	// constraint (duplicate slug or id).
	ErrConflict = errors.New("uniqueness conflict")
)

// Store is the resource storage contract. K is the external lookup key:
// products key on slug, posts key on numeric id. Insert assigns the
// record's numeric id. Each operation is atomic on its own; there are no
// cross-record transactions.
type Store[K comparable, R any] interface {
	List(ctx context.Context) ([]*R, error)
	Get(ctx context.Context, key K) (*R, error)
	Insert(ctx context.Context, rec *R) (*R, error)
	Replace(ctx context.Context, key K, rec *R) (*R, error)
	Delete(ctx context.Context, key K) error
}

// ProductStore keys on slug; PostStore keys on id.
type (
	ProductStore = Store[string, domain.Product]
	PostStore    = Store[int64, domain.Post]
)

// UserRepository backs authentication and registration.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
