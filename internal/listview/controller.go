package listview

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"ams-console/internal/source"

	"go.uber.org/zap"
)

// Phase is the lifecycle of one tab's row set.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseErrored
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseErrored:
		return "errored"
	}
	return "unknown"
}

// Source lists rows of one entity collection.
type Source[T any] interface {
	List(ctx context.Context, q source.Query) (source.Page[T], error)
}

// Mutator issues create/update/delete calls for one entity collection.
type Mutator[T any] interface {
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id int64, payload T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Options parametrizes a Controller for one entity tab. The same generic
// controller serves every entity; only the tab id, page size, matcher and
// endpoint differ per instance.
type Options[T any] struct {
	// Tab is the tab id used in the URL ("assets", "asset-type", ...).
	Tab string
	// Primary marks the view's default tab; it uses the bare page/search
	// parameter names and is what an absent tab parameter selects.
	Primary bool
	// PageSize defaults to 12.
	PageSize int
	// Debounce is the search quiet period, default 500ms.
	Debounce time.Duration
	// Match reports whether a row matches a search needle. Required for
	// tabs that support search; the match must be case-insensitive
	// substring over the entity's documented searchable fields.
	Match func(row T, needle string) bool
	// Mutator is optional; without one the tab is read-only.
	Mutator Mutator[T]
	// Validate checks a mutation payload before dispatch. A non-empty
	// result aborts the call with the same field-error shape a server 400
	// decodes to; the payload never reaches the wire.
	Validate func(payload T) map[string][]string
	Logger   *zap.SugaredLogger
}

// State is a point-in-time copy of controller state for rendering.
type State struct {
	Tab        string
	Phase      Phase
	Search     string
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	Err        string
}

// Controller owns search, pagination and row state for one entity tab and
// keeps it consistent with the URL query string and the remote collection.
// Methods are safe for concurrent use; ordering between overlapping fetches
// is enforced by a generation counter so a stale response never overwrites
// fresher state.
type Controller[T any] struct {
	src  Source[T]
	opts Options[T]

	pageParam   string
	searchParam string
	deb         *debouncer

	mu         sync.Mutex
	phase      Phase
	search     string
	page       int
	totalCount int
	totalPages int
	rows       []T
	lastErr    string
	gen        uint64
}

// ErrReadOnly is returned by mutations on a controller with no Mutator.
var ErrReadOnly = errors.New("listview: no mutator configured")

// NewController builds a controller over src.
func NewController[T any](src Source[T], opts Options[T]) *Controller[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = 12
	}
	if opts.Debounce == 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	c := &Controller[T]{
		src:        src,
		opts:       opts,
		deb:        newDebouncer(opts.Debounce),
		phase:      PhaseIdle,
		page:       1,
		totalPages: 1,
	}
	c.pageParam, c.searchParam = paramNames(opts.Tab, opts.Primary)
	return c
}

// Tab returns the controller's tab id.
func (c *Controller[T]) Tab() string { return c.opts.Tab }

// Primary reports whether this is the view's default tab.
func (c *Controller[T]) Primary() bool { return c.opts.Primary }

// Init reads the controller's page and search state from an incoming URL
// query string. Malformed or missing page values read as 1; a non-empty
// search collapses pagination to a single page.
func (c *Controller[T]) Init(values url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = parsePage(values.Get(c.pageParam))
	c.search = strings.TrimSpace(values.Get(c.searchParam))
	if c.search != "" {
		c.page = 1
	}
	c.phase = PhaseIdle
}

// EncodeQuery serializes the controller's state into values, omitting
// defaults: page 1 and empty search produce no parameters at all.
func (c *Controller[T]) EncodeQuery(values url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.search != "" {
		values.Set(c.searchParam, c.search)
		return
	}
	if c.page > 1 {
		values.Set(c.pageParam, strconv.Itoa(c.page))
	}
}

// Load fetches rows for the current state. With an empty search the request
// is paged server-side and totals come from response metadata; with a
// non-empty search the whole collection is fetched and filtered locally,
// collapsing to a single logical page.
func (c *Controller[T]) Load(ctx context.Context) error {
	refetch, err := c.loadOnce(ctx)
	if err == nil && refetch {
		// The server reported fewer pages than the requested page, e.g.
		// after deleting the last row of the last page. Clamp and fetch
		// the now-valid page.
		_, err = c.loadOnce(ctx)
	}
	return err
}

func (c *Controller[T]) loadOnce(ctx context.Context) (refetch bool, err error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.phase = PhaseLoading
	search := c.search
	q := source.Query{}
	if search == "" {
		q.Page = c.page
		q.PageSize = c.opts.PageSize
	}
	// With a search active the whole collection is fetched unfiltered;
	// matching happens locally so resolved reference names are searchable
	// too, which the server cannot do.
	c.mu.Unlock()

	page, err := c.src.List(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer load superseded this one; its result is discarded.
		c.opts.Logger.Debugw("stale fetch discarded", "tab", c.opts.Tab)
		return false, nil
	}
	if err != nil {
		c.rows = nil
		c.lastErr = err.Error()
		c.phase = PhaseErrored
		c.opts.Logger.Warnw("list fetch failed", "tab", c.opts.Tab, "error", err)
		return false, err
	}
	c.lastErr = ""
	c.phase = PhaseLoaded

	if search != "" {
		filtered := page.Rows[:0:0]
		for _, row := range page.Rows {
			if c.opts.Match == nil || c.opts.Match(row, search) {
				filtered = append(filtered, row)
			}
		}
		c.rows = filtered
		c.totalCount = len(filtered)
		c.totalPages = 1
		c.page = 1
		return false, nil
	}

	c.rows = page.Rows
	c.totalCount = page.TotalCount
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	if c.page > c.totalPages {
		c.page = c.totalPages
		return true, nil
	}
	return false, nil
}

// SetPage moves to page n and reloads. Out-of-bounds requests are a no-op,
// mirroring disabled pagination buttons.
func (c *Controller[T]) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	max := c.totalPages
	if max < 1 {
		max = 1
	}
	if n < 1 || n > max || n == c.page {
		c.mu.Unlock()
		return nil
	}
	c.page = n
	c.mu.Unlock()
	return c.Load(ctx)
}

// NextPage advances one page when possible.
func (c *Controller[T]) NextPage(ctx context.Context) error {
	return c.SetPage(ctx, c.State().Page+1)
}

// PrevPage goes back one page when possible.
func (c *Controller[T]) PrevPage(ctx context.Context) error {
	return c.SetPage(ctx, c.State().Page-1)
}

// CanPrev reports whether a previous page exists.
func (c *Controller[T]) CanPrev() bool {
	s := c.State()
	return s.Page > 1
}

// CanNext reports whether a next page exists.
func (c *Controller[T]) CanNext() bool {
	s := c.State()
	return s.Page < s.TotalPages
}

// SetSearch updates the search text and schedules a reload after the quiet
// period. Every call restarts the timer; only the last pending search fires.
// Any search change resets pagination to page 1.
func (c *Controller[T]) SetSearch(ctx context.Context, q string) {
	q = strings.TrimSpace(q)
	c.mu.Lock()
	if q == c.search {
		c.mu.Unlock()
		return
	}
	c.search = q
	c.page = 1
	c.mu.Unlock()
	c.deb.Trigger(func() {
		_ = c.Load(ctx)
	})
}

// FlushSearch forces a pending debounced search to run now. Tests and
// "press enter" UI paths use it.
func (c *Controller[T]) FlushSearch() {
	c.deb.Flush()
}

// Create posts a new record and, on success, re-fetches the current page.
// On failure no local state changes, so the triggering dialog can stay open
// for a retry.
func (c *Controller[T]) Create(ctx context.Context, payload T) (T, error) {
	var out T
	if c.opts.Mutator == nil {
		return out, ErrReadOnly
	}
	if err := c.validate(payload); err != nil {
		return out, err
	}
	out, err := c.opts.Mutator.Create(ctx, payload)
	if err != nil {
		return out, err
	}
	return out, c.Load(ctx)
}

// Update puts a record and, on success, re-fetches the current page.
func (c *Controller[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	var out T
	if c.opts.Mutator == nil {
		return out, ErrReadOnly
	}
	if err := c.validate(payload); err != nil {
		return out, err
	}
	out, err := c.opts.Mutator.Update(ctx, id, payload)
	if err != nil {
		return out, err
	}
	return out, c.Load(ctx)
}

// Delete removes a record and, on success, re-fetches the current page.
// Deleting the only row of the last page clamps back to the new last page.
func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	if c.opts.Mutator == nil {
		return ErrReadOnly
	}
	if err := c.opts.Mutator.Delete(ctx, id); err != nil {
		return err
	}
	return c.Load(ctx)
}

func (c *Controller[T]) validate(payload T) error {
	if c.opts.Validate == nil {
		return nil
	}
	if errs := c.opts.Validate(payload); len(errs) > 0 {
		return source.NewValidationError(errs)
	}
	return nil
}

// Rows returns a copy of the current row set.
func (c *Controller[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.rows))
	copy(out, c.rows)
	return out
}

// State returns a snapshot of the controller's pagination and phase state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Tab:        c.opts.Tab,
		Phase:      c.phase,
		Search:     c.search,
		Page:       c.page,
		PageSize:   c.opts.PageSize,
		TotalCount: c.totalCount,
		TotalPages: c.totalPages,
		Err:        c.lastErr,
	}
}

// DismissError clears the error banner message.
func (c *Controller[T]) DismissError() {
	c.mu.Lock()
	c.lastErr = ""
	if c.phase == PhaseErrored {
		c.phase = PhaseIdle
	}
	c.mu.Unlock()
}

// Close cancels any pending debounced search.
func (c *Controller[T]) Close() {
	c.deb.Stop()
}

// MatchFields is the shared substring matcher: it reports whether any of
// fields contains needle, case-insensitively. Nil-safe for optional fields.
func MatchFields(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// RequireFields is the shared presence validator: each named field must be
// non-empty after trimming. Returns nil when everything is present.
func RequireFields(fields map[string]string) map[string][]string {
	var errs map[string][]string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			if errs == nil {
				errs = map[string][]string{}
			}
			errs[name] = append(errs[name], "must not be empty")
		}
	}
	return errs
}
