package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linford/necronet/internal/model"
)

var _ ArtifactStore = (*Supabase)(nil)

// Supabase implements ArtifactStore against a Supabase project's PostgREST
// endpoint, authenticated with the project API key.
type Supabase struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

// SupabaseOption configures the Supabase store.
type SupabaseOption func(*Supabase)

// WithTable overrides the table name (default: artifacts).
func WithTable(table string) SupabaseOption {
	return func(s *Supabase) { s.table = table }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) SupabaseOption {
	return func(s *Supabase) { s.httpClient = c }
}

// NewSupabase creates a Supabase-backed artifact store.
func NewSupabase(projectURL, apiKey string, opts ...SupabaseOption) *Supabase {
	s := &Supabase{
		baseURL: strings.TrimRight(projectURL, "/"),
		apiKey:  apiKey,
		table:   "artifacts",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// restError represents a non-2xx response from PostgREST.
type restError struct {
	StatusCode int
	Body       string
}

func (e *restError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Put inserts or replaces an artifact by id.
func (s *Supabase) Put(ctx context.Context, a model.Artifact) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	_, err = s.do(ctx, http.MethodPost, s.tableURL(nil), body, headers)
	if err != nil {
		return fmt.Errorf("supabase insert: %w", err)
	}
	return nil
}

// Get returns the artifact with the given id, or ErrNotFound.
func (s *Supabase) Get(ctx context.Context, id string) (*model.Artifact, error) {
	q := url.Values{}
	q.Set("artifact_id", "eq."+id)
	q.Set("select", "*")
	respBody, err := s.do(ctx, http.MethodGet, s.tableURL(q), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase select: %w", err)
	}
	var artifacts []model.Artifact
	if err := json.Unmarshal(respBody, &artifacts); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(artifacts) == 0 {
		return nil, ErrNotFound
	}
	return &artifacts[0], nil
}

// Patch merges the set fields into an existing record.
func (s *Supabase) Patch(ctx context.Context, id string, p ArtifactPatch) error {
	fields := p.Fields()
	if len(fields) == 0 {
		return nil
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}
	q := url.Values{}
	q.Set("artifact_id", "eq."+id)
	if _, err := s.do(ctx, http.MethodPatch, s.tableURL(q), body, nil); err != nil {
		return fmt.Errorf("supabase update: %w", err)
	}
	return nil
}

// List returns artifacts ordered by created_at descending.
func (s *Supabase) List(ctx context.Context, limit, offset int) ([]model.Artifact, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	q.Set("limit", fmt.Sprint(limit))
	q.Set("offset", fmt.Sprint(offset))
	respBody, err := s.do(ctx, http.MethodGet, s.tableURL(q), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase list: %w", err)
	}
	artifacts := []model.Artifact{}
	if err := json.Unmarshal(respBody, &artifacts); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return artifacts, nil
}

func (s *Supabase) tableURL(q url.Values) string {
	u := s.baseURL + "/rest/v1/" + s.table
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *Supabase) do(ctx context.Context, method, url string, body []byte, headers map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &restError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
