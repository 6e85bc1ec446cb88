// Package poller implements the polling synchronizers.
//
// The RoundSynchronizer:
//   - Polls GET /api/rounds on a fixed interval, immediately on start
//   - Diffs each page against the previous one by round ID and flags new rounds
//   - Clears the new flags after a short decay delay
//   - Keeps the last good list when a poll fails
//
// The StatsSynchronizer polls the summary, recent and distribution
// endpoints on its own loop. The two share no state.
//
// Each synchronizer runs a single loop goroutine, so fetches never overlap.
// Ticks that arrive during a slow fetch are coalesced by the ticker. Every
// fetch carries a generation number and only the latest one is applied; after
// Stop no response mutates state.
package poller
