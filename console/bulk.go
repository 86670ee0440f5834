package console

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/xiuxian-wiki/encyclopedia/models"
)

var errImportFormat = errors.New("import data must be a JSON array")

// ItemResult is the outcome of one element of a bulk operation. Index is
// the element's position in the request.
type ItemResult struct {
	Index int
	ID    string
	Err   error
}

// Failures returns the results that carry an error.
func Failures(results []ItemResult) []ItemResult {
	var failed []ItemResult
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// ParseImport splits pasted text into its array elements.
func ParseImport(text string) ([]json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") {
		return nil, errImportFormat
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, errImportFormat
	}
	return items, nil
}

// BulkDelete deletes every id concurrently and waits for all of them.
// Failures do not stop the others and nothing is rolled back.
func BulkDelete(ctx context.Context, backend Backend, token string, c models.Category, ids []string) []ItemResult {
	results := make([]ItemResult, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			results[i] = ItemResult{Index: i, ID: id, Err: backend.Delete(ctx, token, c, id)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Import posts every element concurrently and waits for all of them.
func Import(ctx context.Context, backend Backend, token string, c models.Category, items []json.RawMessage) []ItemResult {
	results := make([]ItemResult, len(items))
	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			res := ItemResult{Index: i}
			rec, err := backend.Create(ctx, token, c, item)
			if err != nil {
				res.Err = err
			} else {
				res.ID = rec.Base().ID
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}
