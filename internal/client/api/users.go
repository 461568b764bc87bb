package api

import (
	"context"
	"net/http"
	"net/url"

	"onepercent/internal/shared/models"
)

// ToggleUserStatus flips a user between active and blocked states; the
// backend owns the actual transition.
func (c *Client) ToggleUserStatus(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodPatch, "/user/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	c.cache.invalidate(Users.Tag)
	return nil
}

// Statistics fetches the dashboard headline numbers.
func (c *Client) Statistics(ctx context.Context) (models.Statistics, error) {
	var env struct {
		Data models.Statistics `json:"data"`
	}
	err := c.getJSON(ctx, "/user/statistics", nil, &env)
	return env.Data, err
}

// EarningStatistics fetches per-month earnings for a year.
func (c *Client) EarningStatistics(ctx context.Context, year string) ([]models.MonthlyEarning, error) {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}
	var env struct {
		Data []models.MonthlyEarning `json:"data"`
	}
	err := c.getJSON(ctx, "/user/user-earning", q, &env)
	return env.Data, err
}

// UserStatistics fetches per-month signups for a year.
func (c *Client) UserStatistics(ctx context.Context, year string) ([]models.MonthlyUsers, error) {
	q := url.Values{}
	if year != "" {
		q.Set("year", year)
	}
	var env struct {
		Data []models.MonthlyUsers `json:"data"`
	}
	err := c.getJSON(ctx, "/user/user-statistics", q, &env)
	return env.Data, err
}

// OrderHistory fetches the detail payload for one synced order.
func (c *Client) OrderHistory(ctx context.Context, id string) (models.OrderDetails, error) {
	return Get[models.OrderDetails](ctx, c, Orders, id)
}

// MarkNotificationRead PATCHes a notification and invalidates its tag.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.Update(ctx, Notifications, id, map[string]bool{"read": true})
	return err
}
