package assistant

import "errors"

var (
	ErrSessionNotFound       = errors.New("assistant session not found")
	ErrInvalidAudioFile      = errors.New("invalid audio file")
	ErrTranscriptionFailed   = errors.New("audio transcription failed")
	ErrRecognizerUnavailable = errors.New("speech recognizer unavailable")
)
