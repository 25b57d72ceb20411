package stt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event mirrors the recognizer wire protocol. The recognizer consumes raw
// PCM (16 kHz, mono, s16le) and emits JSON events of type ready, partial,
// final or error.
type Event struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	Msg  string `json:"message,omitempty"`
}

const (
	EventReady   = "ready"
	EventPartial = "partial"
	EventFinal   = "final"
	EventError   = "error"
)

var ErrNotConnected = errors.New("not connected to recognizer")

type IRecognizer interface {
	NewStream() (*Stream, error)
}

type recognizerClient struct {
	url              string
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
}

func New() IRecognizer {
	url := os.Getenv("RECOGNIZER_WS_URL")
	if url == "" {
		url = "ws://localhost:2700/ws/reconocimiento"
	}

	return &recognizerClient{
		url:              url,
		handshakeTimeout: 10 * time.Second,
		writeTimeout:     5 * time.Second,
	}
}

// Stream is one push-to-talk capture: audio frames in, recognition events
// out. Events closes when the recognizer hangs up or Close is called.
type Stream struct {
	conn         *websocket.Conn
	events       chan Event
	done         chan struct{}
	writeTimeout time.Duration
	mu           sync.Mutex
	closed       bool
}

func (c *recognizerClient) NewStream() (*Stream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		logrus.WithField("url", c.url).Errorf("Failed to connect to recognizer: %v", err)
		return nil, fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	s := &Stream{
		conn:         conn,
		events:       make(chan Event, 16),
		done:         make(chan struct{}),
		writeTimeout: c.writeTimeout,
	}

	go s.readLoop()

	return s, nil
}

func (s *Stream) readLoop() {
	defer close(s.events)

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			wasClosed := s.closed
			s.mu.Unlock()

			if !wasClosed {
				s.emit(Event{Type: EventError, Msg: classifyError(err)})
			}
			return
		}

		var ev Event
		if err := jsoniter.Unmarshal(message, &ev); err != nil {
			logrus.Errorf("Unreadable recognizer event: %v", err)
			continue
		}

		if !s.emit(ev) {
			return
		}
	}
}

// emit delivers an event unless the stream was closed. A consumer that
// stopped draining must never pin the read loop on a full buffer.
func (s *Stream) emit(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// SendAudio forwards one PCM frame to the recognizer.
func (s *Stream) SendAudio(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrNotConnected
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("error sending audio frame: %w", err)
	}

	return nil
}

// Finish tells the recognizer no more audio is coming so it can flush a
// final result for whatever it buffered.
func (s *Stream) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrNotConnected
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, []byte(`{"eof":1}`))
}

func (s *Stream) Events() <-chan Event {
	return s.events
}

func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	s.conn.Close()
}

// classifyError maps transport failures onto the status phrases the
// assistant reads back to the user.
func classifyError(err error) string {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return "Servicio de voz no disponible"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline"):
		return "El servicio de voz no responde"
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		return "Conexión de voz finalizada"
	default:
		return "Error de conexión con el servicio de voz"
	}
}
