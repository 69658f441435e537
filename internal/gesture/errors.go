package gesture

import "errors"

var (
	// ErrSessionActive rejects starting a gesture while another is live.
	ErrSessionActive = errors.New("another gesture is in progress")

	// ErrNotVisible indicates an activity that has no row on the board.
	ErrNotVisible = errors.New("activity is not visible on the board")

	// ErrUndated rejects moving or resizing a bar that has no dates.
	ErrUndated = errors.New("activity has no dates; drag on its row to create a bar")

	// ErrAlreadyDated rejects create-bar on an activity that already has dates.
	ErrAlreadyDated = errors.New("activity already has dates")

	// ErrNothingPending indicates Confirm without a pending request.
	ErrNothingPending = errors.New("no action awaiting confirmation")

	// ErrNoSelection indicates a keyboard action without a selected activity.
	ErrNoSelection = errors.New("no activity selected")
)
