package assistantRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alexleon2021/vocalcart/internal/entity"
	contextPkg "github.com/alexleon2021/vocalcart/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type CommandDB struct {
	ID         sql.NullString `db:"id"`
	SessionID  sql.NullString `db:"session_id"`
	Transcript sql.NullString `db:"transcript"`
	Normalized sql.NullString `db:"normalized"`
	Intent     sql.NullString `db:"intent"`
	Response   sql.NullString `db:"response"`
	Handled    sql.NullBool   `db:"handled"`
	AudioURL   sql.NullString `db:"audio_url"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *commandsRepository) CreateCommand(ctx context.Context, command entity.AssistantCommand) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         command.ID,
		"session_id": command.SessionID,
		"transcript": command.Transcript,
		"normalized": command.Normalized,
		"intent":     command.Intent,
		"response":   command.Response,
		"handled":    command.Handled,
		"audio_url":  command.AudioURL,
		"created_at": command.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommand")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating assistant command")
		return err
	}

	return nil
}

func (r *commandsRepository) GetCommandsBySession(ctx context.Context, sessionID string, limit, offset int) ([]entity.AssistantCommand, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var commandsList []CommandDB
	var total int

	argsKV := map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	}

	countQuery, countArgs, err := sqlx.Named(queryCountCommandsBySession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCommandsBySession named query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountCommandsBySession execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetCommandsBySession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsBySession named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &commandsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCommandsBySession execution err")
		return nil, 0, err
	}

	commands := make([]entity.AssistantCommand, 0, len(commandsList))
	for _, c := range commandsList {
		commands = append(commands, entity.AssistantCommand{
			ID:         c.ID.String,
			SessionID:  c.SessionID.String,
			Transcript: c.Transcript.String,
			Normalized: c.Normalized.String,
			Intent:     c.Intent.String,
			Response:   c.Response.String,
			Handled:    c.Handled.Bool,
			AudioURL:   c.AudioURL.String,
			CreatedAt:  c.CreatedAt,
		})
	}

	return commands, total, nil
}
