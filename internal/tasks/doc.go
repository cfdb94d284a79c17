// Package tasks owns the festival data lifecycle: fetch, normalize, and report state to the view layer.
//
// # Lifecycle
//
// A [Lifecycle] is bound to one festival identifier at a time and is always in exactly one [Kind]:
//
//  1. [Loading] : a fetch is in flight; a rotator advances the status message on a fixed interval
//  2. [Success] : the lineup was fetched and normalized
//  3. [Failure] : the fetch or normalization failed; the message is already user-facing
//
// [Lifecycle.Mount], [Lifecycle.SetFestival] and [Lifecycle.Retry] re-enter Loading. Retry while Loading
// is ignored so only one fetch is ever in flight.
//
// # Superseded Fetches
//
// Every entry into Loading bumps a generation counter. A fetch commits only if its generation is still
// current; older results are dropped and their contexts cancelled.
//
// # Progress Reporting
//
// State changes are published on [Lifecycle.Updates]. Sends use select with default so a slow consumer
// never stalls the lifecycle; consumers that miss an update read [Lifecycle.State].
//
// # Rotator
//
// The loading rotator owns a [Ticker] that is stopped on every exit from Loading, including Close.
// Tests inject a [TickerFunc] to observe the release.
package tasks
