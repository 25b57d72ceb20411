package assistantRepository

const (
	queryCreateCommand = `
		INSERT INTO assistant_commands (
			id,
			session_id,
			transcript,
			normalized,
			intent,
			response,
			handled,
			audio_url,
			created_at
		) VALUES (
			:id,
			:session_id,
			:transcript,
			:normalized,
			:intent,
			:response,
			:handled,
			:audio_url,
			:created_at
		)
	`

	queryGetCommandsBySession = `
		SELECT
			id,
			session_id,
			transcript,
			normalized,
			intent,
			response,
			handled,
			audio_url,
			created_at
		FROM assistant_commands
		WHERE session_id = :session_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommandsBySession = `
		SELECT COUNT(*)
		FROM assistant_commands
		WHERE session_id = :session_id
	`
)
