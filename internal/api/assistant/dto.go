package assistant

import (
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/cart"
	"github.com/alexleon2021/vocalcart/internal/entity"
)

type CreateSessionRequest struct {
	Voice         string `json:"voz" validate:"omitempty,oneof=default femenina masculina"`
	DictationMode string `json:"modo_dictado" validate:"omitempty,oneof=monolithic stepByStep"`
}

type CreateSessionResponse struct {
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	Screen      string `json:"pantalla"`
}

type CommandRequest struct {
	Transcript string `json:"transcripcion" validate:"required"`
}

type CommandResponse struct {
	Transcript string               `json:"transcripcion"`
	Normalized string               `json:"normalizado"`
	Intent     string               `json:"intencion"`
	Handled    bool                 `json:"atendido"`
	Response   string               `json:"respuesta"`
	Screen     string               `json:"pantalla"`
	AudioURL   string               `json:"audio_url,omitempty"`
	Cart       *cart.CartResponse   `json:"carrito,omitempty"`
	Checkout   *entity.CheckoutForm `json:"checkout,omitempty"`
	OrderID    string               `json:"orden_id,omitempty"`
}

type NlpTestRequest struct {
	Transcript string `json:"transcripcion" validate:"required"`
}

type NlpTestResponse struct {
	Transcript string `json:"transcripcion"`
	Normalized string `json:"normalizado"`
	IsNumeric  bool   `json:"es_numerico"`
	Digits     string `json:"digitos"`
}

type HistoryEntry struct {
	ID         string    `json:"id"`
	Transcript string    `json:"transcripcion"`
	Normalized string    `json:"normalizado"`
	Intent     string    `json:"intencion"`
	Response   string    `json:"respuesta"`
	Handled    bool      `json:"atendido"`
	AudioURL   string    `json:"audio_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Commands []HistoryEntry `json:"comandos"`
	Total    int            `json:"total"`
}

// StreamEvent is the websocket frame sent back to the browser during a
// push-to-talk capture.
type StreamEvent struct {
	Type    string           `json:"type"`
	Text    string           `json:"text,omitempty"`
	Message string           `json:"message,omitempty"`
	State   string           `json:"state,omitempty"`
	Result  *CommandResponse `json:"result,omitempty"`
}
