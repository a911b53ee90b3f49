package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"portal-service/internal/domain"
	"portal-service/pkg/xerrors"

	json "github.com/goccy/go-json"
)

// Client talks to the insurance backend REST API. The portal owns no
// business data; products, plans, premiums, profiles and applications all
// live behind this client.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// do runs one backend call. userID travels as a header because the backend
// trusts this service; end-user auth is terminated at the gateway.
func (c *Client) do(ctx context.Context, method, path, userID string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", xerrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return xerrors.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend %s %s: status %d: %s", method, path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlansByProduct(ctx context.Context, productID string) ([]Plan, error) {
	var out []Plan
	if err := c.do(ctx, http.MethodGet, "/api/plans/by-product/"+url.PathEscape(productID), "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CalculatePremium(ctx context.Context, req PremiumRequest) (float64, error) {
	var out premiumResponse
	if err := c.do(ctx, http.MethodPost, "/api/plans/calculate", "", req, &out); err != nil {
		return 0, err
	}
	return out.CalculatedPremium, nil
}

func (c *Client) Profile(ctx context.Context, userID string) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, p Profile) error {
	return c.do(ctx, http.MethodPut, "/api/profile", userID, p, nil)
}

func (c *Client) Applications(ctx context.Context, userID string) ([]ApplicationSummary, error) {
	var out []ApplicationSummary
	if err := c.do(ctx, http.MethodGet, "/api/applications", userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Application(ctx context.Context, userID, id string) (*ApplicationDetail, error) {
	var out ApplicationDetail
	if err := c.do(ctx, http.MethodGet, "/api/applications/"+url.PathEscape(id), userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateApplication(ctx context.Context, userID string, draft domain.ApplicationDraft) (*ApplicationReceipt, error) {
	var out ApplicationReceipt
	if err := c.do(ctx, http.MethodPost, "/api/applications", userID, draft, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrSubmissionRejected, err)
	}
	return &out, nil
}

// LatestDraft fetches the backend's remembered draft for a line. Any
// failure degrades to absent; a convenience draft must never block the
// wizard from reaching a usable blank state.
func (c *Client) LatestDraft(ctx context.Context, userID string, line domain.InsuranceLine) (*RemoteDraft, error) {
	var out RemoteDraft
	err := c.do(ctx, http.MethodGet, "/api/applications/drafts/latest?type="+url.QueryEscape(string(line)), userID, nil, &out)
	if err != nil {
		log.Printf("[WARN] latest draft lookup failed for user=%s line=%s: %v", userID, line, err)
		return nil, nil
	}
	return &out, nil
}

func (c *Client) Pay(ctx context.Context, userID, applicationID string, req PaymentRequest) (*PaymentReceipt, error) {
	var out PaymentReceipt
	if err := c.do(ctx, http.MethodPost, "/api/payments/"+url.PathEscape(applicationID)+"/pay", userID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
