package playback

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// The speaker is a process-wide singleton that beep initializes once.
// Extracted tracks are always 44.1kHz so the first init fits them all.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// audioHandle is the running audio side of a session. Stop is safe to
// call multiple times.
type audioHandle interface {
	Stop()
}

// noAudio is the silent fallback when extraction or the audio device
// fails.
type noAudio struct{}

func (noAudio) Stop() {}

// startAudio extracts the audio track and starts it on the speaker.
// Every failure path degrades to silent playback instead of failing the
// session.
func (p *Player) startAudio(ctx context.Context, path string) audioHandle {
	wavPath, err := p.trans.ExtractAudio(ctx, path)
	if err != nil {
		logging.Warn("Audio extraction failed for %s, playing silent: %v", filepath.Base(path), err)
		metrics.PlaybackAudioTotal.WithLabelValues("fallback").Inc()
		return noAudio{}
	}

	player, err := playWAV(wavPath)
	if err != nil {
		logging.Warn("Audio playback failed for %s, playing silent: %v", filepath.Base(path), err)
		_ = os.Remove(wavPath)
		metrics.PlaybackAudioTotal.WithLabelValues("fallback").Inc()
		return noAudio{}
	}

	metrics.PlaybackAudioTotal.WithLabelValues("playing").Inc()
	return player
}

// wavPlayer streams an extracted WAV file through the system speaker
// and owns the temporary file's lifetime.
type wavPlayer struct {
	streamer beep.StreamSeekCloser
	path     string
	stopOnce sync.Once
}

func playWAV(path string) (*wavPlayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode wav: %w", err)
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		_ = streamer.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	if format.SampleRate == speakerRate {
		speaker.Play(streamer)
	} else {
		speaker.Play(beep.Resample(4, format.SampleRate, speakerRate, streamer))
	}

	logging.Debug("Audio started: %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return &wavPlayer{streamer: streamer, path: path}, nil
}

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// Stop halts audio output and removes the temporary WAV file. The video
// loop never waits on audio progress, so Stop may cut the track short.
func (w *wavPlayer) Stop() {
	w.stopOnce.Do(func() {
		speaker.Clear()
		if err := w.streamer.Close(); err != nil {
			logging.Debug("Closing audio streamer: %v", err)
		}
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			logging.Warn("Removing temp audio file %s: %v", w.path, err)
		}
	})
}
