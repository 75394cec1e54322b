// Package timeline is the timeline synchronization and pagination engine.
//
// A Controller reconciles the local cache with the remote feed. One loop
// goroutine owns the FeedState; cache reads, remote fetches, publishes and
// cache writes run elsewhere and post tagged results back to the loop.
//
// Results are arbitrated by generation and source priority (remote > cache):
// a result is applied only when it belongs to the latest load and its source
// ranks at least as high as the one currently displayed. Everything else is
// discarded and reported as EventDiscarded.
//
// Pagination appends older pages behind a strictly decreasing Cursor. An
// empty page ends pagination for the session; a page that does not move the
// cursor backwards is a protocol violation and also ends it.
package timeline
