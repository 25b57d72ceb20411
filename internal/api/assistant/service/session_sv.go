package assistantService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexleon2021/vocalcart/internal/api/assistant"
	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	jwtPkg "github.com/alexleon2021/vocalcart/pkg/jwt"
	"github.com/alexleon2021/vocalcart/pkg/log"
	"github.com/alexleon2021/vocalcart/pkg/redis"
)

const (
	sessionTTL      = 24 * time.Hour
	sessionTokenTTL = 24 * time.Hour
)

func sessionKey(sessionID string) string {
	return fmt.Sprintf("assistant:session:%s", sessionID)
}

func (s *assistantService) CreateSession(ctx context.Context, req assistant.CreateSessionRequest) (*assistant.CreateSessionResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	now := time.Now()
	sessionID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}

	voice := req.Voice
	if voice == "" {
		voice = "default"
	}

	mode := entity.DictationMode(req.DictationMode)
	if mode == "" {
		mode = entity.DictationMonolithic
	}

	session := entity.AssistantSession{
		ID:            sessionID,
		Screen:        entity.ScreenShop,
		DictationMode: mode,
		Voice:         voice,
		CreatedAt:     now,
		LastActivity:  now,
	}

	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"session_id": sessionID,
	}, sessionTokenTTL)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"voice":      voice,
		"mode":       mode,
	}).Info("Assistant session created")

	return &assistant.CreateSessionResponse{
		SessionID:   sessionID,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Screen:      string(session.Screen),
	}, nil
}

func (s *assistantService) GetSession(ctx context.Context, sessionID string) (entity.AssistantSession, error) {
	var session entity.AssistantSession

	err := s.redisServer.GetJSON(ctx, sessionKey(sessionID), &session)
	if errors.Is(err, redis.ErrNotFound) {
		return entity.AssistantSession{}, assistant.ErrSessionNotFound
	}
	if err != nil {
		return entity.AssistantSession{}, err
	}

	return session, nil
}

func (s *assistantService) saveSession(ctx context.Context, session *entity.AssistantSession) error {
	session.LastActivity = time.Now()
	return s.redisServer.SetJSON(ctx, sessionKey(session.ID), session, sessionTTL)
}

func (s *assistantService) GetHistory(ctx context.Context, sessionID string, page, limit int) (*assistant.HistoryResponse, error) {
	repo, err := s.assistantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit

	commands, total, err := repo.Commands.GetCommandsBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &assistant.HistoryResponse{
		Commands: make([]assistant.HistoryEntry, 0, len(commands)),
		Total:    total,
	}

	for _, c := range commands {
		resp.Commands = append(resp.Commands, assistant.HistoryEntry{
			ID:         c.ID,
			Transcript: c.Transcript,
			Normalized: c.Normalized,
			Intent:     c.Intent,
			Response:   c.Response,
			Handled:    c.Handled,
			AudioURL:   c.AudioURL,
			CreatedAt:  c.CreatedAt,
		})
	}

	return resp, nil
}

// speak synthesizes the reply and stores it, returning a presigned URL the
// browser can play. Any failure here degrades to a text-only reply.
func (s *assistantService) speak(ctx context.Context, session *entity.AssistantSession, text string) string {
	requestID := contextPkg.GetRequestID(ctx)

	if text == "" || s.ttsService == nil || s.s3Client == nil {
		return ""
	}

	data, err := s.ttsService.GenerateAudio(text, session.Voice)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("TTS generation failed, replying without audio")
		return ""
	}

	location, err := s.s3Client.UploadBytes("reply.mp3", data, "audio/mpeg")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Reply audio upload failed")
		return ""
	}

	url, err := s.s3Client.PresignUrl(location)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Reply audio presign failed")
		return ""
	}

	return url
}

// recordCommand persists the exchange for the session history. Failures are
// logged and swallowed, history must never break the conversation.
func (s *assistantService) recordCommand(ctx context.Context, sessionID string, result *assistant.CommandResponse) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.assistantRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Could not open repository for command history")
		return
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return
	}

	if err := repo.Commands.CreateCommand(ctx, entity.AssistantCommand{
		ID:         id,
		SessionID:  sessionID,
		Transcript: result.Transcript,
		Normalized: result.Normalized,
		Intent:     result.Intent,
		Response:   result.Response,
		Handled:    result.Handled,
		AudioURL:   result.AudioURL,
		CreatedAt:  now,
	}); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Could not persist assistant command")
	}
}
