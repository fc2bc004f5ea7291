package usecase

// Error codes shared between the usecases and the HTTP layer.
const (
	CodeInvalidInput              = "INVALID_INPUT"
	CodeRateLimitExceeded         = "RATE_LIMIT_EXCEEDED"
	CodeHistoricalRateUnavailable = "HISTORICAL_RATE_UNAVAILABLE"
	CodeHelocRequiresGreatDeal    = "HELOC_REQUIRES_GREAT_DEAL"
	CodePersistenceError          = "PERSISTENCE_ERROR"
	CodeRecordNotFound            = "RECORD_NOT_FOUND"
	CodeEmailAlreadySet           = "EMAIL_ALREADY_SET"
)

// DomainError is a business refusal the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure; the HTTP layer surfaces it as
// a generic "try again" message.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrorCode extracts the tagged code from either error kind, or "" for
// untagged errors.
func ErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	if te, ok := err.(*TechnicalError); ok {
		return te.Code
	}
	return ""
}
