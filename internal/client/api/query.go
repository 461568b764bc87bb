package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"onepercent/internal/shared/models"
)

// ErrSkipped is returned when a query was skipped by its own guard
// (Skip set, or a detail fetch with no id selected).
var ErrSkipped = errors.New("query skipped")

// ListParams are the collection query parameters every list endpoint accepts.
type ListParams struct {
	Page       int
	Limit      int
	SearchTerm string
	// Skip suppresses the fetch entirely, mirroring conditional queries that
	// only run while their view is mounted.
	Skip bool
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SearchTerm != "" {
		v.Set("searchTerm", p.SearchTerm)
	}
	return v
}

// Page is one page of a collection.
type Page[T any] struct {
	Data       []T
	Pagination models.Pagination
}

type listEnvelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

type detailEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// List fetches one page of a resource collection. Results are cached per
// (tag, parameters); repeated requests are served from cache until a
// mutation invalidates the tag.
func List[T any](ctx context.Context, c *Client, res Resource, p ListParams) (*Page[T], error) {
	if p.Skip {
		return nil, ErrSkipped
	}
	key := "list:" + p.values().Encode()
	body, ok := c.cache.get(res.Tag, key)
	if !ok {
		req, err := c.newRequest(ctx, "GET", res.listPath(), p.values(), nil, "")
		if err != nil {
			return nil, err
		}
		body, err = c.do(req)
		if err != nil {
			return nil, err
		}
		c.cache.put(res.Tag, key, body)
	}
	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", res.Tag, err)
	}
	page := &Page[T]{Pagination: env.Pagination}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &page.Data); err != nil {
			return nil, fmt.Errorf("decode %s items: %w", res.Tag, err)
		}
	}
	return page, nil
}

// Get fetches a single record by id, cached under the resource tag. An empty
// id skips the fetch.
func Get[T any](ctx context.Context, c *Client, res Resource, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, ErrSkipped
	}
	key := "detail:" + id
	body, ok := c.cache.get(res.Tag, key)
	if !ok {
		req, err := c.newRequest(ctx, "GET", res.Path+"/"+url.PathEscape(id), nil, nil, "")
		if err != nil {
			return zero, err
		}
		body, err = c.do(req)
		if err != nil {
			return zero, err
		}
		c.cache.put(res.Tag, key, body)
	}
	var env detailEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("decode %s detail: %w", res.Tag, err)
	}
	var out T
	raw := env.Data
	if len(raw) == 0 {
		// some endpoints return the record without an envelope
		raw = body
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("decode %s record: %w", res.Tag, err)
	}
	return out, nil
}
