package assistantService

import (
	"context"
	"io"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	assistantRepository "github.com/alexleon2021/vocalcart/internal/api/assistant/repository"
	cartService "github.com/alexleon2021/vocalcart/internal/api/cart/service"
	catalogService "github.com/alexleon2021/vocalcart/internal/api/catalog/service"
	checkoutService "github.com/alexleon2021/vocalcart/internal/api/checkout/service"
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/alexleon2021/vocalcart/pkg/audio"
	"github.com/alexleon2021/vocalcart/pkg/redis"
	"github.com/alexleon2021/vocalcart/pkg/s3"
	"github.com/alexleon2021/vocalcart/pkg/utils"
	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	CreateSession(ctx context.Context, req assistant.CreateSessionRequest) (*assistant.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (entity.AssistantSession, error)
	ProcessTranscript(ctx context.Context, sessionID, transcript string) (*assistant.CommandResponse, error)
	ProcessAudioCommand(ctx context.Context, sessionID, filename string, reader io.Reader) (*assistant.CommandResponse, error)
	GetHistory(ctx context.Context, sessionID string, page, limit int) (*assistant.HistoryResponse, error)
}

type assistantService struct {
	log             *logrus.Logger
	redisServer     redis.IRedis
	assistantRepo   assistantRepository.Repository
	cartService     cartService.ICartService
	checkoutService checkoutService.ICheckoutService
	catalogService  catalogService.ICatalogService
	ttsService      *audio.TTSService
	transcriber     *audio.TranscriptionService
	s3Client        s3.ItfS3
	utils           utils.IUtils
}

func NewAssistantService(
	log *logrus.Logger,
	redisServer redis.IRedis,
	assistantRepo assistantRepository.Repository,
	cartSvc cartService.ICartService,
	checkoutSvc checkoutService.ICheckoutService,
	catalogSvc catalogService.ICatalogService,
	ttsService *audio.TTSService,
	transcriber *audio.TranscriptionService,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IAssistantService {
	return &assistantService{
		log:             log,
		redisServer:     redisServer,
		assistantRepo:   assistantRepo,
		cartService:     cartSvc,
		checkoutService: checkoutSvc,
		catalogService:  catalogSvc,
		ttsService:      ttsService,
		transcriber:     transcriber,
		s3Client:        s3Client,
		utils:           utils,
	}
}
