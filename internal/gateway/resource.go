package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize matches the fixed limit every collection endpoint
	// paginates with. Activity logs use ActivityPageSize instead.
	DefaultPageSize  = 10
	ActivityPageSize = 20
)

// ListQuery carries the page number and entity-specific filters of one
// list request. Empty filter values are not sent.
type ListQuery struct {
	Page    int
	Filters url.Values
}

// Page is the {items, total} envelope every list endpoint returns. Total
// is the server-side count across all pages.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// resource is the uniform CRUD surface shared by the typed gateways; each
// gateway fixes T, the endpoint path, and the payload encoding.
type resource[T any] struct {
	transport *Transport
	path      string
	pageSize  int
}

func newResource[T any](transport *Transport, path string, pageSize int) resource[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return resource[T]{transport: transport, path: path, pageSize: pageSize}
}

func (r resource[T]) List(ctx context.Context, q ListQuery) (Page[T], error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	for key, values := range q.Filters {
		if len(values) > 0 && values[0] != "" {
			query.Set(key, values[0])
		}
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(r.pageSize))

	var out Page[T]
	if err := r.transport.do(ctx, call{method: http.MethodGet, path: r.path, query: query}, &out); err != nil {
		return Page[T]{}, err
	}

	return out, nil
}

func (r resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.transport.do(ctx, call{method: http.MethodGet, path: r.itemPath(id)}, &out)
	return out, err
}

func (r resource[T]) create(ctx context.Context, body *payloadBody) (T, error) {
	var out T
	err := r.transport.do(ctx, call{method: http.MethodPost, path: r.path, body: body}, &out)
	return out, err
}

func (r resource[T]) update(ctx context.Context, id string, body *payloadBody) (T, error) {
	var out T
	err := r.transport.do(ctx, call{method: http.MethodPut, path: r.itemPath(id), body: body}, &out)
	return out, err
}

func (r resource[T]) Delete(ctx context.Context, id string) error {
	return r.transport.do(ctx, call{method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

func (r resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// PageSize reports the fixed limit this resource paginates with.
func (r resource[T]) PageSize() int {
	return r.pageSize
}
