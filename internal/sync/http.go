// ABOUTME: HTTP implementation of the remote fill-up store
// ABOUTME: Speaks the PostgREST-style row API the hosted backend exposes

package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// defaultTimeout bounds every remote call; the engine must never block
// indefinitely on the network.
const defaultTimeout = 10 * time.Second

// fillUpsTable is the remote table holding fill-up rows.
const fillUpsTable = "fillups"

// HTTPStore talks to the remote store over its REST row API.
type HTTPStore struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Compile-time check that HTTPStore implements RemoteStore.
var _ RemoteStore = (*HTTPStore)(nil)

// NewHTTPStore creates a store client for the given base URL and API key.
// A nil client gets a default one with a request timeout.
func NewHTTPStore(baseURL, apiKey string, client *http.Client) *HTTPStore {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPStore{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// PullAll fetches every fill-up row for a user, ordered by date ascending.
func (s *HTTPStore) PullAll(ctx context.Context, userID string) ([]Row, error) {
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("order", "date.asc")

	req, err := s.newRequest(ctx, http.MethodGet, q, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull fillups: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("pull fillups: %w", err)
	}

	var rows []Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode fillups: %w", err)
	}
	return rows, nil
}

// Upsert writes one row, resolving conflicts on app_id so repeated pushes of
// the same fill-up never create duplicates.
func (s *HTTPStore) Upsert(ctx context.Context, row Row) error {
	body, err := json.Marshal([]Row{row})
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	q := url.Values{}
	q.Set("on_conflict", "app_id")

	req, err := s.newRequest(ctx, http.MethodPost, q, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("upsert fillup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("upsert fillup: %w", err)
	}
	return nil
}

// DeleteByKey removes the row matching a client-generated id. Deleting a row
// that is already gone succeeds; the API treats it as zero rows matched.
func (s *HTTPStore) DeleteByKey(ctx context.Context, appID string) error {
	q := url.Values{}
	q.Set("app_id", "eq."+appID)

	req, err := s.newRequest(ctx, http.MethodDelete, q, nil)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete fillup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("delete fillup: %w", err)
	}
	return nil
}

func (s *HTTPStore) newRequest(ctx context.Context, method string, q url.Values, body io.Reader) (*http.Request, error) {
	u := fmt.Sprintf("%s/%s?%s", s.baseURL, fillUpsTable, q.Encode())
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	return req, nil
}

// checkStatus turns a non-2xx response into an error carrying a body snippet.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
}
