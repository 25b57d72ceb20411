package assistantHandler

import (
	assistantService "github.com/alexleon2021/vocalcart/internal/api/assistant/service"
	"github.com/alexleon2021/vocalcart/internal/middleware"
	"github.com/alexleon2021/vocalcart/pkg/stt"
	"github.com/alexleon2021/vocalcart/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
	recognizer       stt.IRecognizer
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
	recognizer stt.IRecognizer,
	utils utils.IUtils,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
		recognizer:       recognizer,
		utils:            utils,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	// Session creation is the only unauthenticated entry point, it mints
	// the token everything else requires.
	assistant.Post("/sessions", h.CreateSession)
	assistant.Post("/nlp/test", h.TestNLP)

	assistant.Post("/command", h.middleware.NewTokenMiddleware, h.ProcessCommand)
	assistant.Get("/history", h.middleware.NewTokenMiddleware, h.GetHistory)

	// Push-to-talk streaming. The browser cannot set headers on a
	// websocket upgrade, so the token travels as a query parameter.
	assistant.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	assistant.Get("/ws", websocket.New(h.handleStream))
}
