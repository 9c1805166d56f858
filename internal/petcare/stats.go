package petcare

import (
	"context"
	"net/http"
	"net/url"
)

// DailyStatsFor fetches the dashboard summary for one calendar date.
func (c *Client) DailyStatsFor(ctx context.Context, date string) (*DailyStats, error) {
	query := url.Values{}
	query.Set("date", date)

	var stats DailyStats
	if err := c.do(ctx, "daily_stats", http.MethodGet, "/stats/daily", query, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
