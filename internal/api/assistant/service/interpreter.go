package assistantService

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/nlp"
)

// duplicateWindow suppresses echoes of the same utterance, which partial
// and final recognizer results produce all the time.
const duplicateWindow = 2 * time.Second

func (s *assistantService) ProcessTranscript(ctx context.Context, sessionID, transcript string) (*assistant.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	normalized := nlp.Normalize(transcript)

	result := &assistant.CommandResponse{
		Transcript: transcript,
		Normalized: normalized,
		Intent:     string(nlp.IntentUnrecognized),
		Screen:     string(session.Screen),
	}

	if normalized == "" {
		return result, nil
	}

	// Confirming a purchase is the one command the user repeats on
	// purpose, the dedup guard must let it through.
	isConfirm := strings.Contains(normalized, "confirmar compra")
	if !isConfirm && normalized == session.LastCommand && time.Since(session.LastCommandAt) < duplicateWindow {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"command":    normalized,
		}).Debug("Duplicate command suppressed")
		result.Handled = true
		return result, nil
	}

	s.interpret(ctx, &session, normalized, result)

	session.LastCommand = normalized
	session.LastCommandAt = time.Now()
	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}

	result.Screen = string(session.Screen)
	result.Checkout = session.Checkout
	result.AudioURL = s.speak(ctx, &session, result.Response)

	s.recordCommand(ctx, sessionID, result)

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"command":    normalized,
		"intent":     result.Intent,
		"handled":    result.Handled,
	}).Info("Voice command processed")

	return result, nil
}

func (s *assistantService) ProcessAudioCommand(ctx context.Context, sessionID, filename string, reader io.Reader) (*assistant.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.transcriber == nil {
		return nil, assistant.ErrTranscriptionFailed
	}

	transcript, err := s.transcriber.TranscribeAudio(ctx, filename, reader)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Whisper transcription failed")
		return nil, assistant.ErrTranscriptionFailed
	}

	return s.ProcessTranscript(ctx, sessionID, transcript)
}

// interpret routes a normalized utterance. Global navigation is tried
// first, then the rules of the active screen, then the fallback.
func (s *assistantService) interpret(ctx context.Context, session *entity.AssistantSession, normalized string, result *assistant.CommandResponse) {
	if s.handleGlobal(ctx, session, normalized, result) {
		return
	}

	switch session.Screen {
	case entity.ScreenCheckout:
		if s.handleCheckout(ctx, session, normalized, result) {
			return
		}
	default:
		if s.handleShop(ctx, session, normalized, result) {
			return
		}
	}

	// Short fragments are recognizer noise; only meaningful utterances
	// deserve an "I didn't get that".
	if len(normalized) > 3 {
		result.Intent = string(nlp.IntentUnrecognized)
		result.Handled = false
		result.Response = "No entendí el comando. Dí 'ayuda' para conocer los comandos disponibles."
		return
	}

	result.Handled = false
}

func (s *assistantService) handleGlobal(ctx context.Context, session *entity.AssistantSession, normalized string, result *assistant.CommandResponse) bool {
	switch {
	case containsAny(normalized, "ayuda", "que puedo decir"):
		result.Intent = string(nlp.IntentHelp)
		result.Handled = true
		result.Response = helpFor(session.Screen)
		return true

	case containsAny(normalized, "ir a la tienda", "volver a la tienda", "seguir comprando"):
		if session.Screen == entity.ScreenCheckout {
			// Leaving checkout keeps the cart but abandons the form.
			session.Checkout = nil
			session.NumericBuffer = ""
		}
		session.Screen = entity.ScreenShop
		result.Intent = string(nlp.IntentNavigateNext)
		result.Handled = true
		result.Response = "Estás en la tienda. Puedes buscar o agregar productos."
		return true

	case containsAny(normalized, "ver carrito", "ir al carrito", "mostrar carrito"):
		if session.Screen == entity.ScreenCheckout {
			session.Checkout = nil
			session.NumericBuffer = ""
		}
		session.Screen = entity.ScreenCart
		result.Intent = string(nlp.IntentViewCart)
		result.Handled = true
		result.Response = s.cartSummary(ctx, session.ID)
		s.attachCart(ctx, session.ID, result)
		return true

	case containsAny(normalized, "vaciar carrito", "limpiar carrito"):
		result.Intent = string(nlp.IntentClearCart)
		result.Handled = true
		if err := s.cartService.ClearCart(ctx, session.ID); err != nil {
			result.Response = "No pude vaciar el carrito, intenta de nuevo."
			return true
		}
		result.Response = "Carrito vaciado."
		s.attachCart(ctx, session.ID, result)
		return true

	case containsAny(normalized, "finalizar compra", "ir a pagar", "pagar"):
		result.Intent = string(nlp.IntentCheckout)
		result.Handled = true
		if session.Screen == entity.ScreenCheckout {
			// Already mid-checkout, don't throw away what was dictated.
			result.Response = "Ya estás pagando. Dí 'leer resumen' o 'confirmar compra' para terminar."
			return true
		}
		cartEntity, err := s.cartService.GetCartEntity(ctx, session.ID)
		if err != nil || len(cartEntity.Items) == 0 {
			result.Response = "Tu carrito está vacío. Agrega productos antes de pagar."
			return true
		}
		session.Screen = entity.ScreenCheckout
		session.Checkout = newCheckoutForm()
		session.NumericBuffer = ""
		result.Response = "Comencemos con tus datos personales. Dime tu nombre completo."
		return true

	case containsAny(normalized, "cancelar"):
		result.Intent = string(nlp.IntentCancel)
		result.Handled = true
		if session.Screen == entity.ScreenCheckout {
			session.Checkout = nil
			session.NumericBuffer = ""
			session.Screen = entity.ScreenCart
			result.Response = "Compra cancelada. Volviste al carrito."
			return true
		}
		result.Response = "No hay nada que cancelar."
		return true
	}

	return false
}

func (s *assistantService) attachCart(ctx context.Context, sessionID string, result *assistant.CommandResponse) {
	cartResp, err := s.cartService.GetCart(ctx, sessionID)
	if err == nil {
		result.Cart = cartResp
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// afterTrigger returns the text that follows the first matching trigger,
// trimmed, or ok=false when no trigger matches.
func afterTrigger(normalized string, triggers ...string) (string, bool) {
	for _, t := range triggers {
		if idx := strings.Index(normalized, t); idx >= 0 {
			return strings.TrimSpace(normalized[idx+len(t):]), true
		}
	}
	return "", false
}

func helpFor(screen entity.Screen) string {
	switch screen {
	case entity.ScreenCart:
		return "Puedes decir: quitar un producto, cambiar la cantidad, vaciar carrito, finalizar compra o volver a la tienda."
	case entity.ScreenCheckout:
		return "Dicta el campo que te pido, o dí: siguiente, anterior, leer resumen, confirmar compra o cancelar."
	default:
		return "Puedes decir: buscar un producto, agregar un producto, ver carrito, o finalizar compra."
	}
}
