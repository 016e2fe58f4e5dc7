package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-kivik/kivik/v4"
)

const sequenceRetries = 5

type sequenceDoc struct {
	Rev   string `json:"_rev,omitempty"`
	Value int64  `json:"value"`
}

// nextSequence increments the per-resource counter document and returns the
// new value. CouchDB rejects stale revisions with 409, so a lost race is
// retried with a fresh read.
func nextSequence(ctx context.Context, db *kivik.DB, resource string) (int64, error) {
	docID := fmt.Sprintf("seq:%s", resource)

	for i := 0; i < sequenceRetries; i++ {
		var doc sequenceDoc
		err := db.Get(ctx, docID).ScanDoc(&doc)
		if err != nil && kivik.HTTPStatus(err) != http.StatusNotFound {
			return 0, fmt.Errorf("failed to read sequence %s: %w", resource, err)
		}

		doc.Value++
		if _, err := db.Put(ctx, docID, doc); err != nil {
			if kivik.HTTPStatus(err) == http.StatusConflict {
				continue
			}
			return 0, fmt.Errorf("failed to advance sequence %s: %w", resource, err)
		}

		return doc.Value, nil
	}

	return 0, fmt.Errorf("sequence %s contended beyond %d retries", resource, sequenceRetries)
}

// docRev fetches the current revision of a document, mapping a missing
// document to ErrNotFound.
func docRev(ctx context.Context, db *kivik.DB, docID string) (string, error) {
	var doc struct {
		Rev string `json:"_rev"`
	}

	if err := db.Get(ctx, docID).ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to fetch revision for %s: %w", docID, err)
	}

	return doc.Rev, nil
}
