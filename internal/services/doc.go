// Package services talks to the TidalFest backend.
//
// [APIService] issues the single lineup request the client needs and hands back the raw decoded body.
// It does not interpret the envelope; that is the normalizer's job.
//
// # Error Handling
//
// Failures are returned as typed errors that wrap sentinels from the shared package:
//   - [NetworkError] : transport failure, wraps [shared.ErrServiceUnavailable]
//   - [HTTPError] : non-2xx status, wraps [shared.ErrAPIRequest] and keeps a bounded body excerpt
//   - [DecodeError] : 2xx body that is not JSON, wraps [shared.ErrDecode]
//
// Outbound requests are throttled with a token bucket from golang.org/x/time/rate so that rapid festival
// switches cannot flood the backend.
//
// # Authentication
//
// Login is delegated entirely to the backend: [APIService.LoginURL] returns the address a browser must be sent to.
package services
