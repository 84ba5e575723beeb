package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// Current / Next / Previous Tests
// =============================================================================

func TestGetCurrentBeforeLoad(t *testing.T) {
	h := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.GetCurrent(w, httptest.NewRequest(http.MethodGet, "/api/current", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	st := decodeStatus(t, w)
	if st.Total != 0 {
		t.Errorf("Total = %d, want 0", st.Total)
	}
	if st.Message != "Select a folder to begin" {
		t.Errorf("Message = %q, want the never-loaded prompt", st.Message)
	}
}

func TestNextPrevious(t *testing.T) {
	h := newTestHandlers(t)
	dir := makeMediaDir(t, "a.jpg", "b.jpg", "c.jpg")
	loadDir(t, h, dir)

	w := httptest.NewRecorder()
	h.NextEntry(w, httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody))

	st := decodeStatus(t, w)
	if st.Name != "b.jpg" || st.Index != 2 {
		t.Errorf("After next: Name = %q Index = %d, want b.jpg 2", st.Name, st.Index)
	}

	w = httptest.NewRecorder()
	h.PreviousEntry(w, httptest.NewRequest(http.MethodPost, "/api/previous", http.NoBody))

	st = decodeStatus(t, w)
	if st.Name != "a.jpg" || st.Index != 1 {
		t.Errorf("After previous: Name = %q Index = %d, want a.jpg 1", st.Name, st.Index)
	}
}

func TestNextClampsAtEnd(t *testing.T) {
	h := newTestHandlers(t)
	dir := makeMediaDir(t, "a.jpg")
	loadDir(t, h, dir)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.NextEntry(w, httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody))

		st := decodeStatus(t, w)
		if st.Name != "a.jpg" || st.Index != 1 {
			t.Fatalf("Next #%d moved off the last entry: %+v", i+1, st)
		}
	}
}

func TestNextPreviousEmptyCatalog(t *testing.T) {
	h := newTestHandlers(t)
	loadDir(t, h, makeMediaDir(t))

	w := httptest.NewRecorder()
	h.NextEntry(w, httptest.NewRequest(http.MethodPost, "/api/next", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	st := decodeStatus(t, w)
	if st.Total != 0 {
		t.Errorf("Total = %d, want 0", st.Total)
	}
	if st.Message != "No supported files in this folder" {
		t.Errorf("Message = %q, want the empty-folder message", st.Message)
	}
}

// =============================================================================
// Favorite Endpoint Tests
// =============================================================================

func TestToggleFavorite(t *testing.T) {
	h := newTestHandlers(t)
	dir := makeMediaDir(t, "a.jpg")
	loadDir(t, h, dir)

	w := httptest.NewRecorder()
	h.ToggleFavorite(w, httptest.NewRequest(http.MethodPost, "/api/favorite", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	st := decodeStatus(t, w)
	if !st.Favorite {
		t.Error("Favorite = false, want true after first toggle")
	}

	// The favorite is mirrored on disk next to the media
	mirror := filepath.Join(dir, "favorites", "a.jpg")
	if _, err := os.Stat(mirror); err != nil {
		t.Errorf("Favorite mirror missing: %v", err)
	}

	// Toggling again clears it
	w = httptest.NewRecorder()
	h.ToggleFavorite(w, httptest.NewRequest(http.MethodPost, "/api/favorite", http.NoBody))

	st = decodeStatus(t, w)
	if st.Favorite {
		t.Error("Favorite = true, want false after second toggle")
	}
	if _, err := os.Stat(mirror); !os.IsNotExist(err) {
		t.Errorf("Favorite mirror should be gone, stat err = %v", err)
	}
}

func TestToggleFavoriteEmpty(t *testing.T) {
	h := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.ToggleFavorite(w, httptest.NewRequest(http.MethodPost, "/api/favorite", http.NoBody))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
}

// =============================================================================
// Delete Endpoint Tests
// =============================================================================

func TestDeleteCurrent(t *testing.T) {
	h := newTestHandlers(t)
	dir := makeMediaDir(t, "a.jpg", "b.jpg")
	loadDir(t, h, dir)

	w := httptest.NewRecorder()
	h.DeleteCurrent(w, httptest.NewRequest(http.MethodDelete, "/api/current", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	st := decodeStatus(t, w)
	if st.Name != "b.jpg" || st.Total != 1 {
		t.Errorf("After delete: Name = %q Total = %d, want b.jpg 1", st.Name, st.Total)
	}

	if _, err := os.Stat(filepath.Join(dir, "a.jpg")); !os.IsNotExist(err) {
		t.Errorf("Deleted file still present, stat err = %v", err)
	}
}

func TestDeleteLastEntry(t *testing.T) {
	h := newTestHandlers(t)
	dir := makeMediaDir(t, "only.jpg")
	loadDir(t, h, dir)

	w := httptest.NewRecorder()
	h.DeleteCurrent(w, httptest.NewRequest(http.MethodDelete, "/api/current", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	st := decodeStatus(t, w)
	if st.Total != 0 {
		t.Errorf("Total = %d, want 0", st.Total)
	}
	if st.Message != "Folder is now empty" {
		t.Errorf("Message = %q, want the emptied-by-delete message", st.Message)
	}
}

func TestDeleteEmpty(t *testing.T) {
	h := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.DeleteCurrent(w, httptest.NewRequest(http.MethodDelete, "/api/current", http.NoBody))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	if resp["error"] == "" {
		t.Error("Expected an error field in the response")
	}
}
