// Package buffer implements the pure, grapheme-accurate document model for
// quill.
//
// Coordinates are 0-based (Row, GraphemeCol) in grapheme clusters.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// Two counters describe the buffer over time: Version bumps on any
// observable change (text, cursor, selection) and Revision bumps only when
// the text changes. Callers that capture a range and edit it later compare
// revisions to detect that the captured range went stale.
package buffer
