package console

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/fieldside/tourney-admin/internal/gateway"
)

// ListState is the per-page retrieval state: idle until the first fetch,
// loading while a request is in flight, ready once a response committed.
type ListState int

const (
	StateIdle ListState = iota
	StateLoading
	StateReady
)

func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "idle"
	}
}

// ErrControllerClosed is returned for operations against a torn-down page.
var ErrControllerClosed = errors.New("list controller is closed")

// Fetcher retrieves one page of a collection.
type Fetcher[T any] func(ctx context.Context, q gateway.ListQuery) (gateway.Page[T], error)

// ListController owns the paginated, filtered view of one collection.
// Every outgoing fetch carries a monotonically increasing sequence number;
// a response is committed only if it is still the newest issued, so a
// stale page can never overwrite a newer one.
type ListController[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	pageSize int

	state   ListState
	items   []T
	total   int
	page    int
	filters url.Values
	errMsg  string
	seq     uint64
	closed  bool
}

// Snapshot is what the table renders: rows, pagination bounds, and the
// boundary-disable flags for Previous/Next.
type Snapshot[T any] struct {
	State      ListState
	Items      []T
	Page       int
	TotalPages int
	Total      int
	CanPrev    bool
	CanNext    bool
	Error      string
}

func NewListController[T any](fetch Fetcher[T], pageSize int) *ListController[T] {
	if pageSize <= 0 {
		pageSize = gateway.DefaultPageSize
	}
	return &ListController[T]{
		fetch:    fetch,
		pageSize: pageSize,
		page:     1,
		filters:  url.Values{},
	}
}

// Refresh re-fetches the current page under the current filters. A post-
// mutation resync and the initial mount both land here.
func (c *ListController[T]) Refresh(ctx context.Context) error {
	ctx, span := startConsoleSpan(ctx, "console.list.refresh")
	defer span.End()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	c.seq++
	mySeq := c.seq
	c.state = StateLoading
	q := gateway.ListQuery{Page: c.page, Filters: cloneValues(c.filters)}
	c.mu.Unlock()

	result, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A newer request was issued (or the page was torn down) while this
	// one was in flight; its result must not be applied.
	if c.closed || mySeq != c.seq {
		return nil
	}

	c.state = StateReady
	if err != nil {
		c.errMsg = displayMessage(err)
		return err
	}

	c.errMsg = ""
	c.items = result.Items
	c.total = result.Total
	if max := totalPages(c.total, c.pageSize); c.page > max {
		c.page = max
	}

	return nil
}

// SetFilter changes one filter, resets pagination to page 1, and issues
// exactly one new fetch. An empty value removes the filter.
func (c *ListController[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if value == "" {
		c.filters.Del(key)
	} else {
		c.filters.Set(key, value)
	}
	c.page = 1
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// GoToPage clamps the target into [1, totalPages] and fetches it. A move
// that clamps back onto the current page still refreshes.
func (c *ListController[T]) GoToPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	c.page = clampPage(page, totalPages(c.total, c.pageSize))
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *ListController[T]) NextPage(ctx context.Context) error {
	c.mu.Lock()
	target := c.page + 1
	c.mu.Unlock()
	return c.GoToPage(ctx, target)
}

func (c *ListController[T]) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	target := c.page - 1
	c.mu.Unlock()
	return c.GoToPage(ctx, target)
}

func (c *ListController[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	pages := totalPages(c.total, c.pageSize)
	items := make([]T, len(c.items))
	copy(items, c.items)

	return Snapshot[T]{
		State:      c.state,
		Items:      items,
		Page:       c.page,
		TotalPages: pages,
		Total:      c.total,
		CanPrev:    c.page > 1,
		CanNext:    c.page < pages,
		Error:      c.errMsg,
	}
}

// Close tears the controller down; any in-flight response is discarded and
// later operations fail with ErrControllerClosed.
func (c *ListController[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++
}

func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func clampPage(page, max int) int {
	if page < 1 {
		return 1
	}
	if page > max {
		return max
	}
	return page
}

func cloneValues(in url.Values) url.Values {
	out := url.Values{}
	for key, values := range in {
		for _, value := range values {
			out.Add(key, value)
		}
	}
	return out
}

// displayMessage converts any gateway error into user-visible text,
// keeping the server's message when there is one.
func displayMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, gateway.ErrSessionExpired) {
		return "Your session has expired. Please log in again."
	}
	return "Something went wrong. Please try again."
}
