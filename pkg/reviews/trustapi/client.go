// Package trustapi provides a reviews.Client implementation backed by the
// trust-analysis provider's REST API.
package trustapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reviewd/pkg/domain"
	"reviewd/pkg/reviews"
	"reviewd/pkg/serrors"
	"strings"
)

// Client talks to the provider's REST API and fulfills the reviews.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to the provider
	baseURL    string       // baseURL is the provider API root, without trailing slash
	apiKey     string       // apiKey authenticates this service to the provider
}

// do sends a single JSON request and returns the response status and body.
// Provider-level failure statuses common to every endpoint (auth, rate
// limiting) are mapped to semantic kinds here; endpoint-specific handling of
// 404 and success payloads stays with the caller.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("could not marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// transport errors keep their chain so callers can classify
		// connectivity failures via serrors.IsNoConnection
		return 0, nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("could not read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return resp.StatusCode, b, serrors.With(serrors.ErrUnauthorized, "provider rejected credentials")
	case http.StatusTooManyRequests:
		return resp.StatusCode, b, serrors.With(serrors.ErrRateLimited, "rate limited: %s", strings.TrimSpace(string(b)))
	}

	return resp.StatusCode, b, nil
}

// analysisResponse is the provider's wire format for an analysis snapshot.
type analysisResponse struct {
	ProductID        string              `json:"product_id"`
	Grade            string              `json:"grade"`
	AdjustedRating   *float64            `json:"adjusted_rating"`
	Highlights       map[string][]string `json:"highlights"`
	PageNotSupported bool                `json:"page_not_supported"`
	NotEnoughReviews bool                `json:"not_enough_reviews"`
	NeedsAnalysis    bool                `json:"needs_analysis"`
	NotAnalyzed      bool                `json:"not_analyzed"`
	ComingSoon       bool                `json:"coming_soon"`
	Deleted          bool                `json:"deleted_product_reported"`
}

func (r *analysisResponse) toDomain(id domain.ProductID) *domain.ProductAnalysis {
	out := &domain.ProductAnalysis{
		ProductID:            id,
		AdjustedRating:       r.AdjustedRating,
		Highlights:           r.Highlights,
		NotSupported:         r.PageNotSupported,
		NotEnoughReviews:     r.NotEnoughReviews,
		NeedsAnalysis:        r.NeedsAnalysis,
		NotAnalyzed:          r.NotAnalyzed,
		InfoComingSoon:       r.ComingSoon,
		ReportInStockVisible: r.Deleted,
	}
	if r.Grade != "" {
		g := domain.Grade(strings.ToUpper(r.Grade))
		out.Grade = &g
	}

	return out
}

// ProductAnalysis fetches the current analysis snapshot for the product.
// A 404 means the provider has never seen the product; that is a nil
// snapshot, not an error.
func (c *Client) ProductAnalysis(ctx context.Context, id domain.ProductID) (*domain.ProductAnalysis, error) {
	status, b, err := c.do(ctx, http.MethodGet, "/api/v1/products/"+string(id)+"/analysis", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get analysis failed: %s", strings.TrimSpace(string(b)))
	}

	var rs analysisResponse
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return rs.toDomain(id), nil
}

// statusResponse is the provider's wire format for analysis progress.
type statusResponse struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
}

// parseStatus maps the provider's lowercase status strings onto domain
// constants. Unknown strings pass through uppercased; they read as terminal.
func parseStatus(s string) domain.AnalysisStatus {
	switch s {
	case "pending":
		return domain.AnalysisStatusPending
	case "in_progress":
		return domain.AnalysisStatusInProgress
	case "completed":
		return domain.AnalysisStatusCompleted
	case "not_analyzable", "unprocessable", "page_not_supported":
		return domain.AnalysisStatusNotAnalyzable
	case "stale":
		return domain.AnalysisStatusStale
	default:
		return domain.AnalysisStatus(strings.ToUpper(s))
	}
}

// AnalysisStatus queries the progress of an in-flight analysis request.
// A 404 means no analysis request exists; that is a nil status, not an error.
func (c *Client) AnalysisStatus(ctx context.Context, id domain.ProductID) (*domain.AnalysisStatus, error) {
	status, b, err := c.do(ctx, http.MethodGet, "/api/v1/products/"+string(id)+"/analysis/status", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get analysis status failed: %s", strings.TrimSpace(string(b)))
	}

	var rs statusResponse
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	st := parseStatus(rs.Status)

	return &st, nil
}

// TriggerAnalysis asks the provider to start a fresh analysis. The provider
// answers with the initial status of the new request, or 404/409 when it will
// not analyze the product (nil status).
func (c *Client) TriggerAnalysis(ctx context.Context, id domain.ProductID) (*domain.AnalysisStatus, error) {
	status, b, err := c.do(ctx, http.MethodPost, "/api/v1/products/"+string(id)+"/analyze", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || status == http.StatusConflict {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("trigger analysis failed: %s", strings.TrimSpace(string(b)))
	}

	var rs statusResponse
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	st := parseStatus(rs.Status)

	return &st, nil
}

// adResponse is the provider's wire format for a sponsored-product entry.
type adResponse struct {
	AID            string  `json:"aid"`
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	ImageURL       string  `json:"image_url"`
	Price          string  `json:"price"`
	Currency       string  `json:"currency"`
	Grade          string  `json:"grade"`
	AdjustedRating float64 `json:"adjusted_rating"`
}

// ProductAds loads sponsored-product entries for a product page. A 404 means
// no placements exist; that is an empty list, not an error.
func (c *Client) ProductAds(ctx context.Context, id domain.ProductID) ([]domain.Ad, error) {
	status, b, err := c.do(ctx, http.MethodGet, "/api/v1/products/"+string(id)+"/ads", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get ads failed: %s", strings.TrimSpace(string(b)))
	}

	var rs []adResponse
	if err := json.Unmarshal(b, &rs); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	out := make([]domain.Ad, 0, len(rs))
	for _, ad := range rs {
		out = append(out, domain.Ad{
			AID:            ad.AID,
			Name:           ad.Name,
			URL:            ad.URL,
			ImageURL:       ad.ImageURL,
			Price:          ad.Price,
			Currency:       ad.Currency,
			Grade:          domain.Grade(strings.ToUpper(ad.Grade)),
			AdjustedRating: ad.AdjustedRating,
		})
	}

	return out, nil
}

// ReportBackInStock files a backorder report for the product.
func (c *Client) ReportBackInStock(ctx context.Context, id domain.ProductID) error {
	status, b, err := c.do(ctx, http.MethodPost, "/api/v1/products/"+string(id)+"/report", nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("report back in stock failed: %s", strings.TrimSpace(string(b)))
	}

	return nil
}

// ReportAdEvent sends an attribution event for the sponsored placement aid.
func (c *Client) ReportAdEvent(ctx context.Context, event, source, aid string) error {
	type adEventReq struct {
		Event  string `json:"event"`
		Source string `json:"source"`
		AID    string `json:"aid"`
	}
	status, b, err := c.do(ctx, http.MethodPost, "/api/v1/ads/events", adEventReq{
		Event:  event,
		Source: source,
		AID:    aid,
	})
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("report ad event failed: %s", strings.TrimSpace(string(b)))
	}

	return nil
}

// Ensure Client conforms to the reviews.Client interface at compile time.
var _ reviews.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client, API base URL
// and API key to interact with the provider.
func New(httpClient *http.Client, baseURL, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}
