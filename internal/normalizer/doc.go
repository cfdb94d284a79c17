// Package normalizer maps a decoded backend payload of unknown envelope shape to a [models.Result].
//
// The backend has shipped several wrappers over time. Each is a named [Strategy] tried in a fixed
// priority order (see [Strategies]); the first whose unwrapped object carries a recognized tier
// key wins:
//
//	data.festivalLineup  {"data": {"festivalLineup": {...}}}
//	data                 {"data": {...}}
//	festivalLineup       {"festivalLineup": {...}}
//	bare                 {...}
//
// A payload that reports "success": false fails with a [SchemaError] carrying the backend's own
// error or message text. When nothing matches, the [SchemaError] keeps the raw payload so callers
// can log it.
//
// Flat three-tier payloads and day-partitioned payloads both normalize into the day-partitioned
// [models.Result]; a flat payload becomes day 1 with Partitioned unset. Tier order is never changed.
package normalizer
