// Package editor provides a Bubble Tea rich-text editor component backed by
// the buffer package.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering with block styling, an anchored popup menu, and
// host integration hooks (clipboard, change events, context-menu requests).
// Hosts that mutate the buffer directly call Refresh so the view catches up.
package editor
