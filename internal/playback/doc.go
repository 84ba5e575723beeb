// Package playback runs modal video playback sessions: a frame-timed
// decode loop paced to the source frame rate, presented to a Viewer,
// with the extracted audio track playing on the system speaker. Audio
// failure degrades to silent playback; the loop never waits on audio.
package playback
