// Package feed implements the WebSocket feed.
//
// The Hub:
//   - Upgrades consumer connections on /ws
//   - Fans out synchronizer snapshots as {"type": ..., "data": ...} messages
//   - Replays the latest rounds and stats messages to new clients
//   - Gives every client a bounded buffer and drops messages for slow clients
//
// The Client dials a hub, decodes rounds and stats messages and hands them
// to an EventHandler. It is used by cmd/feedtail.
package feed
