// Package tui hosts the editor as a full-screen Bubble Tea program with
// AI rewrite surfaces: a floating quick-action menu, a right-click context
// menu, and a free-form instruction prompt. Each surface is an assist.Site;
// rewrite calls run as commands off the UI goroutine and are applied back on
// it.
package tui
