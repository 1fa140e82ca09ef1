package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidPlayerID  = "invalid_player_id"
	ErrCodeUnknownMode      = "unknown_mode"
	ErrCodeInvalidOption    = "invalid_option"
	ErrCodeInvalidCardIndex = "invalid_card_index"

	// Quiz flow errors
	ErrCodeNoActiveQuiz      = "no_active_quiz"
	ErrCodeNotAnswered       = "not_answered"
	ErrCodeNotInResults      = "not_in_results"
	ErrCodeNotBrowsable      = "not_browsable"
	ErrCodeNotAnswerable     = "not_answerable"
	ErrCodeNoPendingResume   = "no_pending_resume"
	ErrCodeQuizAlreadyActive = "quiz_already_active"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
	ErrCodeNotImplemented     = "not_implemented"
)
