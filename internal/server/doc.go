// Package server exposes lineups and posters over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// [BasicRouter] registers method-qualified [http.ServeMux] patterns, so wildcards such as {id} are read with
// [http.Request.PathValue] and unknown methods get a 405 from the mux.
//
// # Festival Handler
//
// [FestivalHandler] serves:
//   - GET /healthz : liveness probe
//   - GET /login : 302 to the backend TIDAL login
//   - GET /festival/{id} : canonical lineup JSON
//   - GET /festival/{id}/poster.png : rendered poster as an attachment (?theme=, ?lang=, ?scale=, ?width=)
//
// Every request runs the same fetch and normalize pipeline as the terminal UI (tasks.Resolve).
//
// # Error Pages
//
// Failures render a status-coded generic page, never a stack trace:
//   - 404 : unknown route, missing or malformed festival id
//   - 400 : unknown theme or bad query value
//   - 502 : backend unreachable, non-2xx, undecodable or unrecognized payload
//   - 500 : handler panic, caught by [Recover]
package server
