package assistantHandler

import (
	"errors"
	"sync"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	assistantService "github.com/alexleon2021/vocalcart/internal/api/assistant/service"
	jwtPkg "github.com/alexleon2021/vocalcart/pkg/jwt"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/stt"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	// reconnectDelay spaces out dials to the recognizer so a dead service
	// is not hammered while the user keeps talking.
	reconnectDelay = 3 * time.Second

	// finalizingGrace keeps the recognizer stream open briefly after the
	// user releases the button, so the flushed final result still lands.
	finalizingGrace = 300 * time.Millisecond

	commandTimeout = 30 * time.Second
)

const (
	stateIdle       = "idle"
	stateListening  = "listening"
	stateFinalizing = "finalizing"
	stateError      = "error"
)

var errInvalidStreamToken = errors.New("session token is missing the session id")

type streamControl struct {
	Action string `json:"action"`
}

// handleStream proxies a push-to-talk capture: raw PCM frames (16 kHz,
// mono, s16le) from the browser go to the recognizer, recognition events
// come back, and every final transcript runs through the interpreter.
func (h *AssistantHandler) handleStream(c *websocket.Conn) {
	sessionID, err := h.authorizeStream(c)
	if err != nil {
		h.log.WithFields(log.Fields{
			"error": err.Error(),
		}).Warn("Rejected websocket stream")
		c.WriteJSON(assistant.StreamEvent{Type: "error", Message: "Unauthorized", State: stateError})
		c.Close()
		return
	}

	h.log.WithFields(log.Fields{
		"session_id": sessionID,
	}).Info("Voice stream connected")
	defer h.log.WithFields(log.Fields{
		"session_id": sessionID,
	}).Info("Voice stream disconnected")

	p := &streamProxy{
		log:        h.log,
		recognizer: h.recognizer,
		service:    h.assistantService,
		client:     c,
		sessionID:  sessionID,
	}
	p.run()
}

func (h *AssistantHandler) authorizeStream(c *websocket.Conn) (string, error) {
	token, err := jwtPkg.VerifyTokenString(c.Query("token"), "JWT_ACCESS_TOKEN_SECRET")
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidStreamToken
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok || sessionID == "" {
		return "", errInvalidStreamToken
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := h.assistantService.GetSession(ctx, sessionID); err != nil {
		return "", err
	}

	return sessionID, nil
}

type streamProxy struct {
	log        *logrus.Logger
	recognizer stt.IRecognizer
	service    assistantService.IAssistantService
	client     *websocket.Conn
	sessionID  string

	writeMu sync.Mutex

	mu          sync.Mutex
	stream      *stt.Stream
	state       string
	lastAttempt time.Time
}

func (p *streamProxy) run() {
	p.setState(stateIdle)

	if err := p.ensureStream(); err != nil {
		p.sendEvent(assistant.StreamEvent{Type: stt.EventError, Message: "Servicio de voz no disponible", State: stateError})
	}

	for {
		messageType, message, err := p.client.ReadMessage()
		if err != nil {
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			p.forwardAudio(message)

		case websocket.TextMessage:
			var ctl streamControl
			if err := jsoniter.Unmarshal(message, &ctl); err != nil {
				continue
			}

			switch ctl.Action {
			case "start":
				p.setState(stateListening)
				if err := p.ensureStream(); err != nil {
					p.sendEvent(assistant.StreamEvent{Type: stt.EventError, Message: "Servicio de voz no disponible", State: stateError})
				}
			case "stop":
				p.finishCapture()
			}
		}
	}

	p.mu.Lock()
	stream := p.stream
	p.stream = nil
	p.mu.Unlock()

	if stream != nil {
		stream.Close()
	}
}

func (p *streamProxy) forwardAudio(frame []byte) {
	if err := p.ensureStream(); err != nil {
		return
	}

	p.mu.Lock()
	stream := p.stream
	p.mu.Unlock()

	if stream == nil {
		return
	}

	p.setState(stateListening)

	if err := stream.SendAudio(frame); err != nil {
		p.log.WithFields(log.Fields{
			"session_id": p.sessionID,
			"error":      err.Error(),
		}).Warn("Audio frame dropped, recognizer stream lost")
		p.dropStream(stream)
	}
}

// ensureStream dials the recognizer lazily, at most once per
// reconnectDelay. Frames arriving while disconnected are dropped.
func (p *streamProxy) ensureStream() error {
	p.mu.Lock()
	if p.stream != nil {
		p.mu.Unlock()
		return nil
	}
	if time.Since(p.lastAttempt) < reconnectDelay {
		p.mu.Unlock()
		return stt.ErrNotConnected
	}
	p.lastAttempt = time.Now()
	p.mu.Unlock()

	stream, err := p.recognizer.NewStream()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.stream = stream
	p.mu.Unlock()

	go p.pumpEvents(stream)

	p.sendEvent(assistant.StreamEvent{Type: stt.EventReady, State: stateListening})

	return nil
}

func (p *streamProxy) dropStream(stream *stt.Stream) {
	p.mu.Lock()
	if p.stream == stream {
		p.stream = nil
	}
	p.mu.Unlock()

	stream.Close()
}

func (p *streamProxy) pumpEvents(stream *stt.Stream) {
	for ev := range stream.Events() {
		switch ev.Type {
		case stt.EventReady:
			p.sendEvent(assistant.StreamEvent{Type: stt.EventReady, State: stateListening})

		case stt.EventPartial:
			if ev.Text == "" {
				continue
			}
			p.sendEvent(assistant.StreamEvent{Type: stt.EventPartial, Text: ev.Text})

		case stt.EventFinal:
			p.handleFinal(ev.Text)

		case stt.EventError:
			p.sendEvent(assistant.StreamEvent{Type: stt.EventError, Message: ev.Msg, State: stateError})
			p.dropStream(stream)
			return
		}
	}

	p.dropStream(stream)
}

func (p *streamProxy) handleFinal(text string) {
	if text == "" {
		p.setState(stateIdle)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := p.service.ProcessTranscript(ctx, p.sessionID, text)
	if err != nil {
		p.log.WithFields(log.Fields{
			"session_id": p.sessionID,
			"error":      err.Error(),
		}).Error("Failed to interpret final transcript")
		p.sendEvent(assistant.StreamEvent{Type: stt.EventError, Message: "No pude procesar el comando", State: stateError})
		return
	}

	p.setState(stateIdle)
	p.sendEvent(assistant.StreamEvent{Type: stt.EventFinal, Text: text, Result: result, State: stateIdle})
}

// finishCapture flushes whatever the recognizer buffered and gives it a
// short grace to produce the final result before the stream is released.
func (p *streamProxy) finishCapture() {
	p.mu.Lock()
	stream := p.stream
	p.mu.Unlock()

	if stream == nil {
		p.setState(stateIdle)
		return
	}

	p.setState(stateFinalizing)
	p.sendEvent(assistant.StreamEvent{Type: "state", State: stateFinalizing})

	if err := stream.Finish(); err != nil {
		p.dropStream(stream)
		p.setState(stateIdle)
		return
	}

	time.AfterFunc(finalizingGrace, func() {
		p.mu.Lock()
		stillCurrent := p.stream == stream
		p.mu.Unlock()

		if stillCurrent {
			p.dropStream(stream)
		}
		p.setState(stateIdle)
		p.sendEvent(assistant.StreamEvent{Type: "state", State: stateIdle})
	})
}

func (p *streamProxy) setState(state string) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

func (p *streamProxy) sendEvent(ev assistant.StreamEvent) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.client.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := p.client.WriteJSON(ev); err != nil {
		p.log.WithFields(log.Fields{
			"session_id": p.sessionID,
			"error":      err.Error(),
		}).Debug("Could not write stream event")
	}
}
