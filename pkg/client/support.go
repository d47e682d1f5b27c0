package client

import (
	"context"
	"fmt"
	"net/url"

	"smpid/pkg/model"
)

// SupportClient calls the helpdesk API.
type SupportClient struct {
	http *HttpClient
}

func NewSupportClient(baseURL string) *SupportClient {
	return &SupportClient{http: NewHttpClient(baseURL)}
}

// List returns tickets, optionally filtered by status.
func (c *SupportClient) List(ctx context.Context, status string) ([]*model.Ticket, error) {
	path := "/api/v1/tickets"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("support service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data []*model.Ticket `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode tickets: %w", err)
	}
	return wrapper.Data, nil
}
