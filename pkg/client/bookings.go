package client

import (
	"context"
	"fmt"
	"net/url"

	"smpid/pkg/model"
)

// BookingsClient calls the bookings service API.
type BookingsClient struct {
	http *HttpClient
}

func NewBookingsClient(baseURL string) *BookingsClient {
	return &BookingsClient{http: NewHttpClient(baseURL)}
}

// CountActive returns the number of active bookings district-wide.
func (c *BookingsClient) CountActive(ctx context.Context) (int64, error) {
	resp, err := c.http.GET(ctx, "/api/v1/bookings?limit=1")
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("bookings service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		TotalCount int64 `json:"total_count"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return 0, fmt.Errorf("could not decode booking count: %w", err)
	}
	return wrapper.TotalCount, nil
}

// CountUpcoming returns the number of active bookings dated today or later.
func (c *BookingsClient) CountUpcoming(ctx context.Context) (int64, error) {
	resp, err := c.http.GET(ctx, "/api/v1/bookings/upcoming/count")
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("bookings service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return 0, fmt.Errorf("could not decode upcoming booking count: %w", err)
	}
	return wrapper.Data.Count, nil
}

// ByDate returns the active bookings on one civil date.
func (c *BookingsClient) ByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	resp, err := c.http.GET(ctx, "/api/v1/bookings/date/"+url.PathEscape(date))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("bookings service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data []*model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode bookings: %w", err)
	}
	return wrapper.Data, nil
}

// Availability returns the computed calendar for one month.
func (c *BookingsClient) Availability(ctx context.Context, year, month int) (*model.MonthAvailability, error) {
	path := fmt.Sprintf("/api/v1/availability?year=%d&month=%d", year, month)
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("bookings service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data model.MonthAvailability `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability: %w", err)
	}
	return &wrapper.Data, nil
}
