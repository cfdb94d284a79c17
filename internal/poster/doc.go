// Package poster turns a normalized lineup into a themed poster and exports it as a PNG.
//
// [Render] is a pure function of (result, theme, clock) producing a [Layout]: panels per day in ascending
// day order, each holding the non-empty tiers in descending prominence with names upper-cased.
// Day dates are derived at render time as today + 3 months + (day - 1).
//
// [Rasterize] draws a Layout with the Go fonts from golang.org/x/image and colors blended by go-colorful.
// [Exporter] wraps rasterization and a [Sink] with a busy flag so overlapping exports are rejected
// with [shared.ErrExportInProgress]. [DirSink] writes through a temp file so a failed export leaves nothing behind.
package poster
