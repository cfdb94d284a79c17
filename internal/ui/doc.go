// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI follows the festival data lifecycle:
//  1. [HomeView] : Enter a festival id or open the TIDAL login in a browser
//  2. [LoadingView] : Spinner and the rotating loading message
//  3. [FailureView] : The failure summary with retry and home actions
//  4. [PosterView] : The lineup poster with theme, language and export actions
//
// The [Model] never writes lifecycle state. It reads [tasks.State] snapshots from
// the lifecycle's update stream and re-reads the current state on each one.
//
// Exports run as a tea.Cmd; the export key is ignored while one is in flight.
package ui
