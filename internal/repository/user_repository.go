package repository

import (
	"context"
	"fmt"
	"net/http"

	"catalog-api-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type couchUserRepository struct {
	client *kivik.Client
	dbName string
}

func NewCouchUserRepository(client *kivik.Client, dbName string) UserRepository {
	return &couchUserRepository{
		client: client,
		dbName: dbName,
	}
}

type userDoc struct {
	Rev  string `json:"_rev,omitempty"`
	Type string `json:"type"`
	domain.User
}

func userDocID(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (r *couchUserRepository) Create(ctx context.Context, user *domain.User) error {
	exists, err := r.UsernameExists(ctx, user.Username)
	if err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}

	db := r.client.DB(r.dbName)

	doc := userDoc{Type: "user", User: *user}
	if _, err := db.Put(ctx, userDocID(user.ID), doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *couchUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	var doc userDoc
	if err := db.Get(ctx, userDocID(id)).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	u := doc.User
	return &u, nil
}

func (r *couchUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"type":     "user",
			"username": username,
		},
		"limit": 1,
	}

	rows := db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query user by username: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNotFound
	}

	var doc userDoc
	if err := rows.ScanDoc(&doc); err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	u := doc.User
	return &u, nil
}

func (r *couchUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
