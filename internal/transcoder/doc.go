// Package transcoder wraps the FFmpeg and FFprobe binaries for video work.
//
// It supports:
//   - Video metadata extraction (codec, resolution, frame rate, duration)
//   - First-frame decoding for preview thumbnails
//   - Raw RGBA frame streaming for timed playback
//   - Audio track extraction to temporary WAV files
//
// All operations shell out to ffmpeg/ffprobe and require them to be
// installed and available in the system PATH. Long-running child
// processes are tracked so Cleanup can kill them on shutdown.
package transcoder
