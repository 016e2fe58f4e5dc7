package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"catalog-api-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

// couchProductRepository stores each product under "product:<slug>" so the
// document id itself enforces slug uniqueness: a duplicate insert loses the
// Put with a 409 rather than racing a lookup.
type couchProductRepository struct {
	client *kivik.Client
	dbName string
}

func NewCouchProductRepository(client *kivik.Client, dbName string) ProductStore {
	return &couchProductRepository{
		client: client,
		dbName: dbName,
	}
}

type productDoc struct {
	Rev  string `json:"_rev,omitempty"`
	Type string `json:"type"`
	domain.Product
}

func productDocID(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}

func (r *couchProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"type": "product",
		},
	}

	rows := db.Find(ctx, query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var doc productDoc
		if err := rows.ScanDoc(&doc); err != nil {
			continue
		}
		p := doc.Product
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	return products, nil
}

func (r *couchProductRepository) Get(ctx context.Context, slug string) (*domain.Product, error) {
	db := r.client.DB(r.dbName)

	var doc productDoc
	if err := db.Get(ctx, productDocID(slug)).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	p := doc.Product
	return &p, nil
}

func (r *couchProductRepository) Insert(ctx context.Context, rec *domain.Product) (*domain.Product, error) {
	db := r.client.DB(r.dbName)

	p := *rec
	if p.ID == 0 {
		id, err := nextSequence(ctx, db, "product")
		if err != nil {
			return nil, err
		}
		p.ID = id
	}

	doc := productDoc{Type: "product", Product: p}
	if _, err := db.Put(ctx, productDocID(p.Slug), doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &p, nil
}

func (r *couchProductRepository) Replace(ctx context.Context, slug string, rec *domain.Product) (*domain.Product, error) {
	db := r.client.DB(r.dbName)

	existing, err := r.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	p := *rec
	p.ID = existing.ID

	if p.Slug != slug {
		// Renames re-home the document: the new id claims the slug, then
		// the old document is removed.
		doc := productDoc{Type: "product", Product: p}
		if _, err := db.Put(ctx, productDocID(p.Slug), doc); err != nil {
			if kivik.HTTPStatus(err) == http.StatusConflict {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
		if err := r.Delete(ctx, slug); err != nil && err != ErrNotFound {
			return nil, err
		}
		return &p, nil
	}

	rev, err := docRev(ctx, db, productDocID(slug))
	if err != nil {
		return nil, err
	}

	doc := productDoc{Rev: rev, Type: "product", Product: p}
	if _, err := db.Put(ctx, productDocID(slug), doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusConflict {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

func (r *couchProductRepository) Delete(ctx context.Context, slug string) error {
	db := r.client.DB(r.dbName)

	rev, err := docRev(ctx, db, productDocID(slug))
	if err != nil {
		return err
	}

	if _, err := db.Delete(ctx, productDocID(slug), rev); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
