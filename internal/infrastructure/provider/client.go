package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/creatorbase/influencer-api/internal/core/ports"
	"github.com/creatorbase/influencer-api/internal/infrastructure/config"
)

// Client talks to the credit-metered social-data API. Timeouts are enforced
// here; callers only pass a context.
type Client struct {
	http *resty.Client
}

// New builds a provider client from configuration.
func New(cfg config.ProviderConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{http: http}
}

type creditUsageResponse struct {
	Billing struct {
		Credits struct {
			Used  int `json:"used"`
			Limit int `json:"limit"`
		} `json:"credits"`
	} `json:"billing"`
}

// CreditUsage reads the account quota snapshot. The provider reports used
// and limit; remaining is derived.
func (c *Client) CreditUsage(ctx context.Context) (*ports.CreditUsage, error) {
	var body creditUsageResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/user/info")
	if err != nil {
		return nil, fmt.Errorf("provider credit usage: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("provider credit usage: status %d", res.StatusCode())
	}

	used := body.Billing.Credits.Used
	limit := body.Billing.Credits.Limit
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &ports.CreditUsage{Used: used, Limit: limit, Remaining: remaining}, nil
}

type profileReportResponse struct {
	Profile struct {
		Followers      int64   `json:"followers"`
		EngagementRate float64 `json:"engagementRate"`
	} `json:"profile"`
}

// FetchProfileReport pulls a fresh report for one handle. Each successful
// call consumes one credit on the provider side.
func (c *Client) FetchProfileReport(ctx context.Context, handle string) (*ports.ProviderReport, error) {
	var body profileReportResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		SetPathParam("handle", handle).
		Get("/instagram/profile/{handle}/report")
	if err != nil {
		return nil, fmt.Errorf("provider report for %s: %w", handle, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("provider report for %s: status %d", handle, res.StatusCode())
	}

	return &ports.ProviderReport{
		Followers:      body.Profile.Followers,
		EngagementRate: body.Profile.EngagementRate,
		FetchedAt:      time.Now().UTC(),
	}, nil
}

var _ ports.ProviderClient = (*Client)(nil)
