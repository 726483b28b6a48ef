package catalog

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultSearchDebounce is the quiescence window for free-text search
// input before a recompute fires.
const DefaultSearchDebounce = 300 * time.Millisecond

// Controller keeps three representations of the filter state consistent:
// the encoded query string (the address-bar mirror), the in-memory
// FilterSpec, and whatever view the apply callback feeds. It is the
// single owner of the current spec; all edits flow through it.
//
// Discrete control changes apply immediately. Free-text search input is
// debounced, a new keystroke cancels the pending recompute
// (last-write-wins, nothing is queued).
type Controller struct {
	logger   hclog.Logger
	apply    func(FilterSpec)
	debounce time.Duration

	mu    sync.Mutex
	spec  FilterSpec
	query string
	timer *time.Timer
}

// NewController creates a controller in the all-defaults state. The apply
// callback is invoked, with the controller's lock released, every time
// the effective spec changes.
func NewController(logger hclog.Logger, apply func(FilterSpec)) *Controller {
	return &Controller{
		logger:   logger,
		apply:    apply,
		debounce: DefaultSearchDebounce,
		spec:     DefaultSpec(),
	}
}

// SetDebounce overrides the search debounce window. Zero disables
// debouncing entirely.
func (c *Controller) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.debounce = d
	c.mu.Unlock()
}

// Init seeds the controller from a deep-link query string. This is the
// only initialization path: the resulting state is identical to the user
// building the same filters interactively.
func (c *Controller) Init(rawQuery string) {
	spec := ParseQuery(rawQuery)
	c.logger.Debug("Initializing filter state from query", "query", rawQuery)
	c.set(spec)
}

// OnFilterChange is the single entry point for discrete control edits
// (category click, checkbox toggle, sort change). The address-bar mirror
// is replaced, never pushed, so filter changes create no history entries.
func (c *Controller) OnFilterChange(spec FilterSpec) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.set(spec)
}

// OnSearchInput records a free-text search edit. The recompute is
// deferred until the input has been quiet for the debounce window; each
// call resets the window and supersedes any pending value.
func (c *Controller) OnSearchInput(text string) {
	c.mu.Lock()

	if c.timer != nil {
		c.timer.Stop()
	}

	next := c.spec
	next.SearchQuery = text

	if c.debounce <= 0 {
		c.mu.Unlock()
		c.set(next)
		return
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		c.set(next)
	})
	c.mu.Unlock()
}

// Spec returns the current effective filter spec.
func (c *Controller) Spec() FilterSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec
}

// Query returns the current encoded query string, the value the address
// bar shows.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// set installs a new spec, updates the query mirror and triggers the
// apply callback. When the encoded query is unchanged the edit is a
// no-op: this is what breaks the write-read-write feedback loop between
// the form and the address bar.
func (c *Controller) set(spec FilterSpec) {
	encoded := spec.Encode()

	c.mu.Lock()
	if encoded == c.query {
		c.mu.Unlock()
		return
	}
	c.spec = spec
	c.query = encoded
	apply := c.apply
	c.mu.Unlock()

	c.logger.Debug("Filter state changed", "query", encoded)

	if apply != nil {
		apply(spec)
	}
}
