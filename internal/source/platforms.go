package source

import (
	"context"
	"fmt"

	"jobscout/internal/posting"
)

// Fetch returns the raw job payloads for one board on one platform.
func (c *Client) Fetch(ctx context.Context, platform posting.Platform, board string) ([]map[string]any, error) {
	switch platform {
	case posting.PlatformGreenhouse:
		return c.fetchGreenhouse(ctx, board)
	case posting.PlatformLever:
		return c.fetchLever(ctx, board)
	case posting.PlatformAshby:
		return c.fetchAshby(ctx, board)
	case posting.PlatformWorkable:
		return c.fetchWorkable(ctx, board)
	default:
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
}

// fetchGreenhouse hits the public board API with content included so a
// second per-job request is unnecessary.
func (c *Client) fetchGreenhouse(ctx context.Context, board string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/v1/boards/%s/jobs?content=true", c.GreenhouseBase, board)
	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// fetchLever returns the board's postings; the endpoint responds with a bare
// JSON array.
func (c *Client) fetchLever(ctx context.Context, board string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/v0/postings/%s?mode=json", c.LeverBase, board)
	var jobs []map[string]any
	if err := c.getJSON(ctx, url, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) fetchAshby(ctx context.Context, board string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/posting-api/job-board/%s?includeCompensation=true", c.AshbyBase, board)
	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) fetchWorkable(ctx context.Context, board string) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/api/v1/widget/accounts/%s?details=true", c.WorkableBase, board)
	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}
