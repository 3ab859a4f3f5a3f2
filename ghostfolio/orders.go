package ghostfolio

import (
	"log"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/matakite/kourasync"
)

// importChunkSize is how many activities go into one import request; the
// import endpoint rejects oversized batches.
const importChunkSize = 10

// Activities returns all activities recorded for the given account.
func (c *Client) Activities(accountID string) ([]kourasync.Activity, error) {
	var data struct {
		Activities []kourasync.Activity `json:"activities"`
	}
	query := url.Values{}
	query.Set("accounts", accountID)
	if err := c.do(http.MethodGet, "/api/v1/order", query, nil, &data); err != nil {
		return nil, err
	}
	return data.Activities, nil
}

// Import submits activities to the ledger, oldest first, in chunks.
// It stops at the first failing chunk.
func (c *Client) Import(activities []kourasync.Activity) error {
	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b kourasync.Activity) int {
		return strings.Compare(a.Date, b.Date)
	})

	for chunk := range slices.Chunk(sorted, importChunkSize) {
		log.Printf("adding %d activities", len(chunk))
		payload := map[string]any{"activities": chunk}
		if err := c.do(http.MethodPost, "/api/v1/import", nil, payload, nil); err != nil {
			return err
		}
	}
	return nil
}

// DeleteActivities removes every activity of the given account.
func (c *Client) DeleteActivities(accountID string) error {
	query := url.Values{}
	query.Set("accounts", accountID)
	return c.do(http.MethodDelete, "/api/v1/order", query, nil, nil)
}
