// Package api provides the client for the Space XY stats REST API.
//
// Consumed endpoints:
//   - GET /api/rounds?limit=N&offset=M
//   - GET /api/stats/summary
//   - GET /api/stats/recent?limit=N
//   - GET /api/distribution
//   - GET /api/health
//   - GET /api/v2/crash/{game}?period=24h
//
// Responses are validated at the boundary. Records that decode but fail
// validation are dropped and logged instead of failing the whole request.
package api
