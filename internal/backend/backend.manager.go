package backend

import (
	"context"
	"net/http"
	"net/url"

	"portal-service/internal/domain"
)

// Manager-only endpoints. The caller's manager role is enforced by the
// portal's middleware; managerID travels as the acting identity.

func (c *Client) ManagerQueue(ctx context.Context, managerID string, status domain.ApplicationStatus) ([]ApplicationSummary, error) {
	var out []ApplicationSummary
	path := "/api/manager/applications?status=" + url.QueryEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, managerID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ManagerApplication(ctx context.Context, managerID, id string) (*ApplicationDetail, error) {
	var out ApplicationDetail
	if err := c.do(ctx, http.MethodGet, "/api/manager/applications/"+url.PathEscape(id), managerID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitDecision(ctx context.Context, managerID, id string, decision domain.Decision) error {
	return c.do(ctx, http.MethodPost, "/api/manager/applications/"+url.PathEscape(id)+"/decision", managerID, decision, nil)
}
