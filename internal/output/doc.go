// Package output formats auracoil results for display or machine
// consumption.
//
// Human-readable writers align columns with lipgloss-aware tables and
// color severity markers only when stdout is a terminal. Every command's
// --format=json mode goes through [WriteJSON]. [RenderDiff] previews
// document changes for dry runs.
package output
