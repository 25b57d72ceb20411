package config

import (
	"fmt"
	"os"

	"github.com/alexleon2021/vocalcart/database/postgres"
	assistantHandler "github.com/alexleon2021/vocalcart/internal/api/assistant/handler"
	assistantRepository "github.com/alexleon2021/vocalcart/internal/api/assistant/repository"
	assistantService "github.com/alexleon2021/vocalcart/internal/api/assistant/service"
	cartHandler "github.com/alexleon2021/vocalcart/internal/api/cart/handler"
	cartService "github.com/alexleon2021/vocalcart/internal/api/cart/service"
	catalogHandler "github.com/alexleon2021/vocalcart/internal/api/catalog/handler"
	catalogRepository "github.com/alexleon2021/vocalcart/internal/api/catalog/repository"
	catalogService "github.com/alexleon2021/vocalcart/internal/api/catalog/service"
	checkoutHandler "github.com/alexleon2021/vocalcart/internal/api/checkout/handler"
	checkoutRepository "github.com/alexleon2021/vocalcart/internal/api/checkout/repository"
	checkoutService "github.com/alexleon2021/vocalcart/internal/api/checkout/service"
	"github.com/alexleon2021/vocalcart/internal/middleware"
	"github.com/alexleon2021/vocalcart/pkg/audio"
	"github.com/alexleon2021/vocalcart/pkg/redis"
	"github.com/alexleon2021/vocalcart/pkg/s3"
	"github.com/alexleon2021/vocalcart/pkg/stt"
	"github.com/alexleon2021/vocalcart/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	recognizer  stt.IRecognizer
	ttsService  *audio.TTSService
	transcriber *audio.TranscriptionService
	s3Client    s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithRecognizer(recognizer stt.IRecognizer) ServerOption {
	return func(s *Server) error {
		s.recognizer = recognizer
		return nil
	}
}

func WithTTSService() ServerOption {
	return func(s *Server) error {
		s.ttsService = audio.NewTTSService(os.Getenv("ELEVENLABS_API_KEY"))
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		s.transcriber = audio.NewTranscriptionService(os.Getenv("OPENAI_API_KEY"))
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Catalog Domain
	catalogRepo := catalogRepository.New(s.db, s.log)
	catalogServices := catalogService.NewCatalogService(s.log, catalogRepo)
	catalogHandlers := catalogHandler.New(s.log, s.validator, s.middleware, catalogServices)

	// Cart Domain
	cartServices := cartService.NewCartService(s.log, s.redisServer, catalogRepo)
	cartHandlers := cartHandler.New(s.log, s.validator, s.middleware, cartServices)

	// Checkout Domain
	checkoutRepo := checkoutRepository.New(s.db, s.log)
	checkoutServices := checkoutService.NewCheckoutService(s.log, checkoutRepo, catalogRepo, cartServices, s.utils)
	checkoutHandlers := checkoutHandler.New(s.log, s.validator, s.middleware, checkoutServices)

	// Assistant Domain
	assistantRepo := assistantRepository.New(s.db, s.log)
	assistantServices := assistantService.NewAssistantService(
		s.log, s.redisServer, assistantRepo,
		cartServices, checkoutServices, catalogServices,
		s.ttsService, s.transcriber, s.s3Client, s.utils,
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices, s.recognizer, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, catalogHandlers, cartHandlers, checkoutHandlers, assistantHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
