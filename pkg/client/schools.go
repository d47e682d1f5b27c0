package client

import (
	"context"
	"fmt"
	"net/url"

	"smpid/pkg/model"
)

// SchoolsClient calls the schools directory API.
type SchoolsClient struct {
	http *HttpClient
}

func NewSchoolsClient(baseURL string) *SchoolsClient {
	return &SchoolsClient{http: NewHttpClient(baseURL)}
}

// List returns one page of school profiles plus the directory total. The
// server caps the page size, so callers wanting the whole directory walk the
// offset until they have total entries.
func (c *SchoolsClient) List(ctx context.Context, limit int, offset int64) ([]*model.SchoolProfile, int64, error) {
	path := fmt.Sprintf("/api/v1/schools?limit=%d&offset=%d", limit, offset)
	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != 200 {
		return nil, 0, fmt.Errorf("schools service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data       []*model.SchoolProfile `json:"data"`
		TotalCount int64                  `json:"total_count"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, 0, fmt.Errorf("could not decode school profiles: %w", err)
	}
	return wrapper.Data, wrapper.TotalCount, nil
}

// ByCode returns one school profile.
func (c *SchoolsClient) ByCode(ctx context.Context, code string) (*model.School, error) {
	resp, err := c.http.GET(ctx, "/api/v1/schools/code/"+url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("schools service: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data model.School `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode school: %w", err)
	}
	return &wrapper.Data, nil
}
