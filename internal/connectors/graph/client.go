// Package graph implements the directory port against the Microsoft
// Graph endpoint-management APIs.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
	"github.com/custodia-labs/policyctl/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DirectoryClient = (*Client)(nil)

// pageSize is the $top value for collection listings.
const pageSize = 100

// Client calls Microsoft Graph with bearer tokens from a TokenProvider.
type Client struct {
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	httpClient    *http.Client

	// baseURL and betaURL override the Graph endpoints; used by tests.
	baseURL string
	betaURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides both Graph endpoints. Used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
		c.betaURL = url
	}
}

// WithRateLimit overrides the default rate limit.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(c *Client) {
		c.rateLimiter = NewRateLimiter(cfg)
	}
}

// NewClient creates a Graph client.
func NewClient(tokenProvider driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(DefaultRateLimit),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		baseURL:       graphBaseURL,
		betaURL:       graphBetaBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// collectionURL returns the absolute URL for a policy type's collection.
func (c *Client) collectionURL(t domain.PolicyType) string {
	base := c.baseURL
	if usesBetaEndpoint(t) {
		base = c.betaURL
	}
	return base + resourcePath(t)
}

// List returns every document of the given policy type, following
// @odata.nextLink pages until the collection is exhausted.
func (c *Client) List(ctx context.Context, t domain.PolicyType) ([]domain.PolicyDocument, error) {
	url := fmt.Sprintf("%s?$top=%d", c.collectionURL(t), pageSize)

	var docs []domain.PolicyDocument
	for url != "" {
		body, err := c.do(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", t, err)
		}

		var page struct {
			Value    []domain.PolicyDocument `json:"value"`
			NextLink string                  `json:"@odata.nextLink"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("list %s: decode response: %w", t, err)
		}

		docs = append(docs, page.Value...)
		url = page.NextLink
	}

	logger.Debug("graph: listed %d %s", len(docs), t)
	return docs, nil
}

// Get returns one document by identifier.
func (c *Client) Get(ctx context.Context, t domain.PolicyType, id string) (domain.PolicyDocument, error) {
	url := c.collectionURL(t) + "/" + id

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", t, id, err)
	}

	var doc domain.PolicyDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("get %s %s: decode response: %w", t, id, err)
	}
	return doc, nil
}

// Create stores a new document and returns it with its assigned identifier.
func (c *Client) Create(ctx context.Context, t domain.PolicyType, doc domain.PolicyDocument) (domain.PolicyDocument, error) {
	body, err := c.do(ctx, http.MethodPost, c.collectionURL(t), doc)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", t, doc.DisplayName(), err)
	}

	var created domain.PolicyDocument
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("create %s %q: decode response: %w", t, doc.DisplayName(), err)
	}

	logger.Debug("graph: created %s %q (%s)", t, created.DisplayName(), created.ID())
	return created, nil
}

// Patch applies a partial document to an existing identifier.
func (c *Client) Patch(ctx context.Context, t domain.PolicyType, id string, doc domain.PolicyDocument) error {
	url := c.collectionURL(t) + "/" + id
	if _, err := c.do(ctx, http.MethodPatch, url, doc); err != nil {
		return fmt.Errorf("patch %s %s: %w", t, id, err)
	}
	return nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, t domain.PolicyType, id string) error {
	url := c.collectionURL(t) + "/" + id
	if _, err := c.do(ctx, http.MethodDelete, url, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", t, id, err)
	}
	return nil
}

// ListAssignments returns the assignments attached to a document.
func (c *Client) ListAssignments(ctx context.Context, t domain.PolicyType, id string) ([]domain.AssignmentTarget, error) {
	url := c.collectionURL(t) + "/" + id + "/assignments"

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("list assignments %s %s: %w", t, id, err)
	}

	var page struct {
		Value []any `json:"value"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("list assignments %s %s: decode response: %w", t, id, err)
	}

	return domain.ParseAssignments(page.Value), nil
}

// CreateAssignment attaches one assignment to a document.
func (c *Client) CreateAssignment(ctx context.Context, t domain.PolicyType, id string, a domain.AssignmentTarget) error {
	url := c.collectionURL(t) + "/" + id + "/assignments"
	if _, err := c.do(ctx, http.MethodPost, url, a.Wire()); err != nil {
		return fmt.Errorf("create assignment %s %s: %w", t, id, err)
	}
	return nil
}

// DeleteAssignment removes one assignment from a document.
func (c *Client) DeleteAssignment(ctx context.Context, t domain.PolicyType, id, assignmentID string) error {
	url := c.collectionURL(t) + "/" + id + "/assignments/" + assignmentID
	if _, err := c.do(ctx, http.MethodDelete, url, nil); err != nil {
		return fmt.Errorf("delete assignment %s %s/%s: %w", t, id, assignmentID, err)
	}
	return nil
}

// do performs one authenticated request and returns the response body.
// Rate limiting is applied before the request; 429 responses record a
// backoff window from the Retry-After header before being returned as
// ErrRateLimited.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
	}

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if IsRateLimited(resp.StatusCode) {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.rateLimiter.RecordRateLimitError(retryAfter)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Debug("graph: %s %s failed with status %d: %s", method, url, resp.StatusCode, graphErrorMessage(body))
		if wrapped := WrapError(resp.StatusCode); wrapped != nil {
			return nil, fmt.Errorf("status %d: %w", resp.StatusCode, wrapped)
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return body, nil
}

// graphErrorMessage extracts the error message from a Graph error body.
func graphErrorMessage(body []byte) string {
	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return string(body)
	}
	return errResp.Error.Code + ": " + errResp.Error.Message
}
