package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Query holds the list parameters a CollectionSource understands. Zero
// values are omitted from the request: Page/PageSize <= 0 means an
// unpaginated fetch, empty Search means no server-side filter.
type Query struct {
	Page     int
	PageSize int
	Search   string
}

// Page is one fetched slice of a collection plus the totals reported by the
// server. When the server sends no total headers the totals are derived from
// the row count.
type Page[T any] struct {
	Rows       []T
	TotalCount int
	TotalPages int
}

// Collection is a typed accessor for one entity endpoint under a Client.
type Collection[T any] struct {
	client *Client
	path   string
	entity string
}

// NewCollection binds entity endpoint path (e.g. "/assets") on c.
// entity names the collection in logs and metrics.
func NewCollection[T any](c *Client, path, entity string) *Collection[T] {
	return &Collection[T]{client: c, path: path, entity: entity}
}

// Entity returns the metrics/log name of the collection.
func (col *Collection[T]) Entity() string { return col.entity }

// List fetches rows according to q. Responses that are not a JSON array are
// reported as errors, never silently coerced.
func (col *Collection[T]) List(ctx context.Context, q Query) (Page[T], error) {
	values := url.Values{}
	mode := "client"
	if q.Page > 0 && q.PageSize > 0 {
		values.Set("page", strconv.Itoa(q.Page))
		values.Set("pageSize", strconv.Itoa(q.PageSize))
		mode = "server"
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}

	start := time.Now()
	header, body, err := col.client.do(ctx, http.MethodGet, col.path, values, nil)
	if err != nil {
		col.client.Metrics().ObserveFetch(col.entity, mode, "error", time.Since(start))
		return Page[T]{}, err
	}

	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		col.client.Metrics().ObserveFetch(col.entity, mode, "error", time.Since(start))
		return Page[T]{}, fmt.Errorf("%s: unexpected response shape: %w", col.entity, err)
	}
	col.client.Metrics().ObserveFetch(col.entity, mode, "ok", time.Since(start))

	page := Page[T]{Rows: rows}
	page.TotalCount, page.TotalPages = totalsFromHeader(header, len(rows), q.PageSize)
	return page, nil
}

// Get fetches a single record by id.
func (col *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	_, body, err := col.client.do(ctx, http.MethodGet, col.path+"/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%s: unexpected response shape: %w", col.entity, err)
	}
	return out, nil
}

// Create posts a new record and returns the server's copy.
func (col *Collection[T]) Create(ctx context.Context, payload T) (T, error) {
	var out T
	_, body, err := col.client.do(ctx, http.MethodPost, col.path, nil, payload)
	if err != nil {
		col.client.Metrics().ObserveMutation(col.entity, "create", "error")
		return out, err
	}
	col.client.Metrics().ObserveMutation(col.entity, "create", "ok")
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return out, fmt.Errorf("%s: unexpected response shape: %w", col.entity, err)
		}
	}
	return out, nil
}

// Update puts a record and returns the server's copy.
func (col *Collection[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	var out T
	_, body, err := col.client.do(ctx, http.MethodPut, col.path+"/"+strconv.FormatInt(id, 10), nil, payload)
	if err != nil {
		col.client.Metrics().ObserveMutation(col.entity, "update", "error")
		return out, err
	}
	col.client.Metrics().ObserveMutation(col.entity, "update", "ok")
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return out, fmt.Errorf("%s: unexpected response shape: %w", col.entity, err)
		}
	}
	return out, nil
}

// Delete removes a record by id.
func (col *Collection[T]) Delete(ctx context.Context, id int64) error {
	_, _, err := col.client.do(ctx, http.MethodDelete, col.path+"/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		col.client.Metrics().ObserveMutation(col.entity, "delete", "error")
		return err
	}
	col.client.Metrics().ObserveMutation(col.entity, "delete", "ok")
	return nil
}

// totalsFromHeader reads X-Total-Count / X-Total-Pages (case-insensitive per
// net/http header semantics). Missing or malformed values degrade to totals
// derived from the fetched row count.
func totalsFromHeader(h http.Header, rowCount, pageSize int) (totalCount, totalPages int) {
	totalCount = -1
	totalPages = -1
	if h != nil {
		if v, err := strconv.Atoi(h.Get("X-Total-Count")); err == nil && v >= 0 {
			totalCount = v
		}
		if v, err := strconv.Atoi(h.Get("X-Total-Pages")); err == nil && v >= 1 {
			totalPages = v
		}
	}
	if totalCount < 0 {
		totalCount = rowCount
	}
	if totalPages < 0 {
		if pageSize > 0 {
			totalPages = (totalCount + pageSize - 1) / pageSize
		}
		if totalPages < 1 {
			totalPages = 1
		}
	}
	return totalCount, totalPages
}
