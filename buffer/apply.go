package buffer

// ApplyStatus reports how ApplyAtRevision treated its edits.
type ApplyStatus uint8

const (
	// ApplyOK means at least one edit changed the text.
	ApplyOK ApplyStatus = iota
	// ApplyNoop means every edit was a no-op; nothing changed.
	ApplyNoop
	// ApplyRevisionMismatch means the buffer text moved past the expected
	// revision; nothing changed.
	ApplyRevisionMismatch
)

func (s ApplyStatus) String() string {
	switch s {
	case ApplyOK:
		return "ok"
	case ApplyNoop:
		return "noop"
	case ApplyRevisionMismatch:
		return "revision-mismatch"
	default:
		return "unknown"
	}
}

// ApplyResult is returned by ApplyAtRevision.
type ApplyResult struct {
	Status ApplyStatus
	// Revision is the buffer revision after the call.
	Revision uint64
	// Change is set only when Status is ApplyOK.
	Change Change
}

// Apply applies a sequence of text edits in order as one compound edit.
// Each edit's range is interpreted against the buffer state at the time that
// edit is applied.
//
// v0 semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
// - One undo step covers the whole sequence.
func (b *Buffer) Apply(edits ...TextEdit) {
	b.applyCompound(edits)
}

// ApplyAtRevision applies edits like Apply, but only when Revision() still
// equals rev. Hosts capture rev together with a range and pass it back here
// so that a range captured earlier is never applied to text that has moved.
func (b *Buffer) ApplyAtRevision(rev uint64, edits ...TextEdit) ApplyResult {
	if b.revision != rev {
		return ApplyResult{Status: ApplyRevisionMismatch, Revision: b.revision}
	}
	ch, ok := b.applyCompound(edits)
	if !ok {
		return ApplyResult{Status: ApplyNoop, Revision: b.revision}
	}
	return ApplyResult{Status: ApplyOK, Revision: b.revision, Change: ch}
}

func (b *Buffer) applyCompound(edits []TextEdit) (Change, bool) {
	if len(edits) == 0 {
		return Change{}, false
	}

	prev := b.snapshot()
	change := b.beginChangeFrom(ChangeSourceHost)

	anyChanged := false
	lastCursor := b.cursor
	for _, e := range edits {
		nextCursor, applied, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}
	if !anyChanged {
		return Change{}, false
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	b.version++
	b.revision++
	b.recordUndo(prev)
	return b.commitChange(change), true
}
