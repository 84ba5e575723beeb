package metrics

import "testing"

func TestNewFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()
	if obs == nil {
		t.Fatal("NewFilesystemObserver returned nil")
	}
}

func TestFilesystemObserverMethods(t *testing.T) {
	obs := NewFilesystemObserver()

	// Each hook must tolerate arbitrary operation and volume labels.
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("observer method panicked: %v", r)
		}
	}()

	obs.ObserveRetryAttempt("stat", "media")
	obs.ObserveRetrySuccess("open", "cache")
	obs.ObserveRetryFailure("readdir", "state")
	obs.ObserveRetryDuration("remove", "unknown", 0.25)
	obs.ObserveStaleError("stat", "media")
}
