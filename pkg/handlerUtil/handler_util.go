package handlerUtil

import (
	"errors"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	"github.com/alexleon2021/vocalcart/internal/api/cart"
	"github.com/alexleon2021/vocalcart/internal/api/catalog"
	"github.com/alexleon2021/vocalcart/internal/api/checkout"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Catalog domain errors
	if errors.Is(err, catalog.ErrProductNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Product not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Producto no encontrado",
			"code":    "PRODUCT_NOT_FOUND",
		})
	}

	if errors.Is(err, catalog.ErrCategoryNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Category not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Categoría no encontrada",
			"code":    "CATEGORY_NOT_FOUND",
		})
	}

	if errors.Is(err, catalog.ErrInsufficientStock) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Insufficient stock")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Stock insuficiente",
			"code":    "INSUFFICIENT_STOCK",
		})
	}

	// Cart domain errors
	var stockErr *cart.InsufficientStockError
	if errors.As(err, &stockErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Add to cart refused, insufficient stock")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":    "Stock insuficiente",
			"code":       "INSUFFICIENT_STOCK",
			"producto":   stockErr.ProductName,
			"solicitado": stockErr.Requested,
			"disponible": stockErr.Available,
		})
	}

	if errors.Is(err, cart.ErrItemNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Item not in cart")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "El producto no está en el carrito",
			"code":    "ITEM_NOT_IN_CART",
		})
	}

	if errors.Is(err, cart.ErrCartEmpty) || errors.Is(err, checkout.ErrEmptyCart) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Cart is empty")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "El carrito está vacío",
			"code":    "CART_EMPTY",
		})
	}

	// Checkout domain errors
	if isCheckoutValidationError(err) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Checkout validation failed")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "CHECKOUT_VALIDATION_ERROR",
		})
	}

	if errors.Is(err, checkout.ErrOrderNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Order not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Orden no encontrada",
			"code":    "ORDER_NOT_FOUND",
		})
	}

	// Assistant domain errors
	if errors.Is(err, assistant.ErrSessionNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Assistant session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Sesión no encontrada",
			"code":    "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, assistant.ErrInvalidAudioFile) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid audio file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Archivo de audio inválido",
			"code":  "INVALID_AUDIO_FILE",
		})
	}

	if errors.Is(err, assistant.ErrTranscriptionFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Transcription failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "No se pudo transcribir el audio",
			"code":  "TRANSCRIPTION_FAILED",
		})
	}

	if errors.Is(err, assistant.ErrRecognizerUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Speech recognizer unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Servicio de voz no disponible",
			"code":  "RECOGNIZER_UNAVAILABLE",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func isCheckoutValidationError(err error) bool {
	for _, target := range []error{
		checkout.ErrInvalidName,
		checkout.ErrInvalidDocument,
		checkout.ErrInvalidPhone,
		checkout.ErrInvalidEmail,
		checkout.ErrInvalidCardNumber,
		checkout.ErrInvalidCardExpiry,
		checkout.ErrInvalidCardCVV,
		checkout.ErrMissingAddress,
		checkout.ErrMissingCity,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
