// Package server exposes tracker state to consumers over HTTP.
//
// Routes:
//   - GET /health, GET /metrics
//   - GET /api/feed: annotated rounds with connection state
//   - GET /api/stats: summary, recent and distribution statistics
//   - GET /api/calculator?bet=&target=&trials=: probability and EV quote
//   - GET /api/cashout: theoretical and observed cashout tables
//   - GET /api/crash/{period}: crash statistics from the upstream API
//   - GET /ws: WebSocket feed
package server
