package timeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/gophfeed/internal/client/models"
	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/google/uuid"
)

// Cache is the local store the controller reads on load and writes merged
// pages to.
type Cache interface {
	Recent(ctx context.Context, limit int) ([]models.TweetWithUser, error)
	UpsertBatch(ctx context.Context, users []models.User, tweets []models.Tweet) error
}

// RemoteFeed is the part of client.Client the controller drives.
type RemoteFeed interface {
	FetchHome(ctx context.Context) ([]models.TweetWithUser, error)
	FetchOlderThan(ctx context.Context, cursorID int64) ([]models.TweetWithUser, error)
	Publish(ctx context.Context, text string) (models.TweetWithUser, error)
}

const (
	DefaultCacheReadLimit = 50
	DefaultEventBuffer    = 64
	DefaultWriteQueue     = 16
)

type Options struct {
	// CacheReadLimit bounds the initial cache read.
	CacheReadLimit int
	// PersistComposed writes published tweets to the cache right away.
	PersistComposed bool
	// EventBuffer is the capacity of the Events channel. The channel must be
	// drained; a full buffer stalls the loop.
	EventBuffer int
	// WriteQueue is the number of pending cache writes; more are dropped.
	WriteQueue int
}

func (o Options) withDefaults() Options {
	if o.CacheReadLimit <= 0 {
		o.CacheReadLimit = DefaultCacheReadLimit
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = DefaultEventBuffer
	}
	if o.WriteQueue <= 0 {
		o.WriteQueue = DefaultWriteQueue
	}
	return o
}

type resultKind int

const (
	resultCache resultKind = iota
	resultHome
	resultPage
	resultPersist
)

// result is what a worker posts back to the loop.
type result struct {
	kind   resultKind
	gen    uint64
	cursor Cursor
	batch  []models.TweetWithUser
	err    error
}

type composeRequest struct {
	item  models.TweetWithUser
	err   error
	reply chan error
}

type view struct {
	feed   []models.TweetWithUser
	source Source
	state  State
}

// Controller runs the timeline state machine. Create it with NewController
// and call Start once.
type Controller struct {
	cache  Cache
	remote RemoteFeed
	log    logging.Logger
	opts   Options

	started   atomic.Bool
	startOnce sync.Once
	done      chan struct{}
	snap      atomic.Pointer[view]

	events    chan Event
	results   chan result
	refreshCh chan struct{}
	moreCh    chan chan bool
	composeCh chan composeRequest
	writes    chan []models.TweetWithUser

	// loop-owned
	feed      *FeedState
	source    Source
	gen       uint64
	pending   int
	paging    bool
	exhausted bool
	halted    bool
	composed  []models.TweetWithUser
}

func NewController(cache Cache, remote RemoteFeed, l logging.Logger, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		cache:     cache,
		remote:    remote,
		log:       l.With("module", "timeline", "session", uuid.NewString()),
		opts:      opts,
		done:      make(chan struct{}),
		events:    make(chan Event, opts.EventBuffer),
		results:   make(chan result, 8),
		refreshCh: make(chan struct{}, 1),
		moreCh:    make(chan chan bool),
		composeCh: make(chan composeRequest),
		writes:    make(chan []models.TweetWithUser, opts.WriteQueue),
		feed:      NewFeedState(),
	}
	c.snap.Store(&view{feed: []models.TweetWithUser{}, state: StateInit})
	return c
}

// Start launches the loop and the cache writer and issues the first load.
// Later calls are no-ops. Both goroutines stop when ctx ends, after which the
// Events channel is closed.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.started.Store(true)
		go c.writer(ctx)
		go c.run(ctx)
	})
}

// Done is closed when the loop has exited.
func (c *Controller) Done() <-chan struct{} { return c.done }

func (c *Controller) Events() <-chan Event { return c.events }

// CurrentFeed returns the latest snapshot, newest first. The slice is shared
// and must not be modified.
func (c *Controller) CurrentFeed() []models.TweetWithUser { return c.snap.Load().feed }

func (c *Controller) Source() Source { return c.snap.Load().source }

func (c *Controller) State() State { return c.snap.Load().state }

// Refresh re-enters LOADING. Requests made while one is queued are merged.
func (c *Controller) Refresh() {
	if !c.started.Load() {
		return
	}
	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
}

// LoadMore asks for the page older than the current tail. It reports whether
// a fetch was started; it is a no-op while loading or paginating, on an empty
// feed and once pagination has ended for the session.
func (c *Controller) LoadMore() bool {
	if !c.started.Load() {
		return false
	}
	reply := make(chan bool, 1)
	select {
	case c.moreCh <- reply:
	case <-c.done:
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-c.done:
		return false
	}
}

// Compose publishes text and prepends the stored tweet to the feed. Errors
// are *Failure values.
func (c *Controller) Compose(ctx context.Context, text string) (models.TweetWithUser, error) {
	if !c.started.Load() {
		return models.TweetWithUser{}, ErrNotStarted
	}

	item, err := c.remote.Publish(ctx, text)
	req := composeRequest{item: item, err: err, reply: make(chan error, 1)}

	select {
	case c.composeCh <- req:
	case <-c.done:
		return models.TweetWithUser{}, fmt.Errorf("compose: %w", context.Canceled)
	case <-ctx.Done():
		return models.TweetWithUser{}, ctx.Err()
	}

	select {
	case err = <-req.reply:
	case <-c.done:
		return models.TweetWithUser{}, fmt.Errorf("compose: %w", context.Canceled)
	}
	if err != nil {
		return models.TweetWithUser{}, err
	}
	return item, nil
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.done)
	defer close(c.events)

	c.log.Info(ctx, "timeline started", "cache_limit", c.opts.CacheReadLimit)
	c.startLoad(ctx)

	for {
		select {
		case <-ctx.Done():
			c.log.Info(ctx, "timeline stopped")
			return
		case <-c.refreshCh:
			c.startLoad(ctx)
		case reply := <-c.moreCh:
			reply <- c.startPage(ctx)
		case req := <-c.composeCh:
			req.reply <- c.applyCompose(ctx, req)
		case r := <-c.results:
			c.apply(ctx, r)
		}
	}
}

func (c *Controller) startLoad(ctx context.Context) {
	c.gen++
	c.pending = 2
	c.paging = false
	gen := c.gen
	c.log.Debug(ctx, "loading", "gen", gen)

	go func() {
		var (
			batch []models.TweetWithUser
			err   error
		)
		if c.cache == nil {
			err = common.ErrStorageUnavailable
		} else {
			batch, err = c.cache.Recent(ctx, c.opts.CacheReadLimit)
		}
		c.post(ctx, result{kind: resultCache, gen: gen, batch: batch, err: err})
	}()

	go func() {
		batch, err := c.remote.FetchHome(ctx)
		c.post(ctx, result{kind: resultHome, gen: gen, batch: batch, err: err})
	}()

	c.publish()
}

func (c *Controller) startPage(ctx context.Context) bool {
	if c.pending > 0 || c.paging || c.exhausted || c.halted {
		return false
	}
	cur := CursorOf(c.feed.items)
	if cur.IsZero() {
		return false
	}

	c.paging = true
	gen := c.gen
	c.log.Debug(ctx, "paginating", "gen", gen, "cursor", cur.ID)

	go func() {
		batch, err := c.remote.FetchOlderThan(ctx, cur.ID)
		c.post(ctx, result{kind: resultPage, gen: gen, cursor: cur, batch: batch, err: err})
	}()

	c.publish()
	return true
}

func (c *Controller) post(ctx context.Context, r result) {
	select {
	case c.results <- r:
	case <-ctx.Done():
	}
}

func (c *Controller) apply(ctx context.Context, r result) {
	switch r.kind {
	case resultCache:
		c.applyCache(ctx, r)
	case resultHome:
		c.applyHome(ctx, r)
	case resultPage:
		c.applyPage(ctx, r)
	case resultPersist:
		c.log.Warn(ctx, "cache write failed", "error", r.err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: storageFailure("persist", r.err)})
	}
	c.publish()
}

func (c *Controller) current(gen uint64) bool {
	if gen != c.gen {
		return false
	}
	c.pending--
	return true
}

func (c *Controller) discard(ctx context.Context, origin SourceKind, gen uint64, reason string) {
	c.log.Debug(ctx, "result discarded", "origin", origin, "gen", gen, "current_gen", c.gen, "reason", reason)
	c.emit(ctx, Event{Kind: EventDiscarded, Source: c.source, Origin: origin})
}

func (c *Controller) applyCache(ctx context.Context, r result) {
	fresh := c.current(r.gen)
	switch {
	case r.err == nil && len(r.batch) == 0:
		return
	case !fresh:
		c.discard(ctx, SourceCache, r.gen, "stale")
		return
	case r.err != nil:
		c.log.Warn(ctx, "cache read failed", "error", r.err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: storageFailure("cache read", r.err)})
		return
	case c.source.Kind > SourceCache:
		c.discard(ctx, SourceCache, r.gen, "outranked")
		return
	}

	c.feed.Replace(r.batch)
	c.keepComposed()
	c.source = Source{Kind: SourceCache, Pages: 1}
	c.log.Debug(ctx, "feed replaced", "source", c.source, "count", c.feed.Len())
	c.emit(ctx, Event{Kind: EventReplaced, Count: c.feed.Len(), Source: c.source})
}

func (c *Controller) applyHome(ctx context.Context, r result) {
	if !c.current(r.gen) {
		c.discard(ctx, SourceRemote, r.gen, "stale")
		return
	}
	err := r.err
	if err == nil {
		err = ValidateBatch(r.batch)
	}
	if err != nil {
		f := remoteFailure("fetch home", err)
		c.log.Warn(ctx, "home fetch failed", "kind", f.Kind, "error", err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: f})
		return
	}

	c.feed.Replace(r.batch)
	c.keepComposed()
	c.source = Source{Kind: SourceRemote, Pages: 1}
	c.log.Info(ctx, "feed replaced", "source", c.source, "count", c.feed.Len())
	c.emit(ctx, Event{Kind: EventReplaced, Count: c.feed.Len(), Source: c.source})
	c.persist(ctx, r.batch)
}

func (c *Controller) applyPage(ctx context.Context, r result) {
	if r.gen != c.gen {
		c.discard(ctx, SourceRemote, r.gen, "stale page")
		return
	}
	c.paging = false

	if r.err != nil {
		f := remoteFailure("fetch older", r.err)
		if f.Kind == ProtocolViolation {
			c.halted = true
		}
		c.log.Warn(ctx, "page fetch failed", "kind", f.Kind, "cursor", r.cursor.ID, "error", r.err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: f})
		return
	}

	next, ok, err := Advance(r.cursor, r.batch)
	if err != nil {
		c.halted = true
		c.log.Error(ctx, "pagination halted", "cursor", r.cursor.ID, "error", err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: &Failure{Kind: ProtocolViolation, Op: "fetch older", Err: err}})
		return
	}
	if !ok {
		c.exhausted = true
		c.log.Info(ctx, "end of timeline", "cursor", r.cursor.ID)
		c.emit(ctx, Event{Kind: EventExhausted, Source: c.source})
		return
	}

	n := c.feed.Append(r.batch)
	if c.source.Kind == SourceRemote {
		c.source.Pages++
	}
	c.log.Debug(ctx, "page appended", "count", n, "cursor", next.ID, "source", c.source)
	c.emit(ctx, Event{Kind: EventAppended, Count: n, Source: c.source})
	c.persist(ctx, r.batch)
}

func (c *Controller) applyCompose(ctx context.Context, req composeRequest) error {
	if req.err != nil {
		f := remoteFailure("compose", req.err)
		c.log.Warn(ctx, "publish failed", "kind", f.Kind, "error", req.err)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: f})
		return f
	}

	id := req.item.ID()
	if c.feed.Has(id) {
		return nil
	}
	if head, ok := c.feed.Head(); id <= 0 || ok && id <= head {
		f := &Failure{Kind: ProtocolViolation, Op: "compose", Err: fmt.Errorf("%w: published id %d is not newer than head %d", common.ErrProtocolViolation, id, head)}
		c.log.Warn(ctx, "published tweet out of order", "id", id, "head", head)
		c.emit(ctx, Event{Kind: EventFailed, Source: c.source, Failure: f})
		return f
	}

	c.feed.Prepend(req.item)
	c.composed = append(c.composed, req.item)
	c.emit(ctx, Event{Kind: EventPrepended, Count: 1, Source: c.source})
	if c.opts.PersistComposed {
		c.persist(ctx, []models.TweetWithUser{req.item})
	}
	return nil
}

// keepComposed puts tweets published this session back on top of a freshly
// replaced feed when they are newer than its head. Tweets the new content
// already holds, or that are older than its head, are forgotten.
func (c *Controller) keepComposed() {
	if len(c.composed) == 0 {
		return
	}
	head, _ := c.feed.Head()
	kept := c.composed[:0]
	for _, item := range c.composed {
		if c.feed.Has(item.ID()) || item.ID() <= head {
			continue
		}
		c.feed.Prepend(item)
		head = item.ID()
		kept = append(kept, item)
	}
	c.composed = kept
}

// publish refreshes the snapshot read by CurrentFeed, Source and State.
func (c *Controller) publish() {
	state := StateDisplayed
	switch {
	case c.pending > 0:
		state = StateLoading
	case c.paging:
		state = StatePaginating
	}
	c.snap.Store(&view{feed: c.feed.Snapshot(), source: c.source, state: state})
}

func (c *Controller) emit(ctx context.Context, ev Event) {
	c.publish()
	ev.Feed = c.snap.Load().feed
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

// persist hands batch to the writer without blocking.
func (c *Controller) persist(ctx context.Context, batch []models.TweetWithUser) {
	if c.cache == nil || len(batch) == 0 {
		return
	}
	select {
	case c.writes <- batch:
	default:
		c.log.Warn(ctx, "cache write queue full, batch dropped", "count", len(batch))
	}
}

// writer applies cache writes one at a time in FIFO order.
func (c *Controller) writer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-c.writes:
			users, tweets := models.Split(batch)
			err := c.cache.UpsertBatch(ctx, users, tweets)
			if err == nil {
				continue
			}
			if errors.Is(err, context.Canceled) {
				return
			}
			c.post(ctx, result{kind: resultPersist, err: err})
		}
	}
}
