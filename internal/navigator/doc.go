// Package navigator holds the cursor state machine for stepping through a
// catalog one entry at a time: clamped next/previous movement, removal with
// the stay-in-place rule, and repositioning after re-scans.
package navigator
