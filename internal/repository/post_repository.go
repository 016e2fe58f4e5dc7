package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"catalog-api-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type couchPostRepository struct {
	client *kivik.Client
	dbName string
}

func NewCouchPostRepository(client *kivik.Client, dbName string) PostStore {
	return &couchPostRepository{
		client: client,
		dbName: dbName,
	}
}

type postDoc struct {
	Rev  string `json:"_rev,omitempty"`
	Type string `json:"type"`
	domain.Post
}

func postDocID(id int64) string {
	return fmt.Sprintf("post:%d", id)
}

func (r *couchPostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"type": "post",
		},
	}

	rows := db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var doc postDoc
		if err := rows.ScanDoc(&doc); err != nil {
			continue
		}
		p := doc.Post
		posts = append(posts, &p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	return posts, nil
}

func (r *couchPostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	db := r.client.DB(r.dbName)

	var doc postDoc
	if err := db.Get(ctx, postDocID(id)).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}

	p := doc.Post
	return &p, nil
}

func (r *couchPostRepository) Insert(ctx context.Context, rec *domain.Post) (*domain.Post, error) {
	db := r.client.DB(r.dbName)

	p := *rec
	if p.ID == 0 {
		id, err := nextSequence(ctx, db, "post")
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	doc := postDoc{Type: "post", Post: p}
	if _, err := db.Put(ctx, postDocID(p.ID), doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &p, nil
}

func (r *couchPostRepository) Replace(ctx context.Context, id int64, rec *domain.Post) (*domain.Post, error) {
	db := r.client.DB(r.dbName)

	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rev, err := docRev(ctx, db, postDocID(id))
	if err != nil {
		return nil, err
	}

	p := *rec
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	doc := postDoc{Rev: rev, Type: "post", Post: p}
	if _, err := db.Put(ctx, postDocID(id), doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &p, nil
}

func (r *couchPostRepository) Delete(ctx context.Context, id int64) error {
	db := r.client.DB(r.dbName)

	rev, err := docRev(ctx, db, postDocID(id))
	if err != nil {
		return err
	}

	if _, err := db.Delete(ctx, postDocID(id), rev); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
