package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rickgao/metawin-stats/internal/model"
)

// timestampFormat is the ISO form the platform expects in createdFrom/To,
// always with millisecond precision.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// GetPage fetches one page of the endpoint's history.
func (c *Client) GetPage(ctx context.Context, endpoint string, page int) (*model.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(c.pageSize))

	var resp model.Page
	if err := c.getWithRetry(ctx, endpoint, query, &resp); err != nil {
		return nil, fmt.Errorf("get page %d: %w", page, err)
	}

	return &resp, nil
}

// GetPageRange fetches one page of the endpoint's history restricted to
// records created inside [from, to].
func (c *Client) GetPageRange(ctx context.Context, endpoint string, page int, from, to time.Time) (*model.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	query.Set("createdFrom", from.UTC().Format(timestampFormat))
	query.Set("createdTo", to.UTC().Format(timestampFormat))

	var resp model.Page
	if err := c.getWithRetry(ctx, endpoint, query, &resp); err != nil {
		return nil, fmt.Errorf("get page %d (%s to %s): %w",
			page, from.UTC().Format(timestampFormat), to.UTC().Format(timestampFormat), err)
	}

	return &resp, nil
}
