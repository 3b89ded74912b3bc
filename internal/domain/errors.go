package domain

import (
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
)

// Error reasons. They are stable identifiers exposed to API clients.
const (
	ReasonMalformedURL        = "MALFORMED"
	ReasonMissingHost         = "MISSING_HOST"
	ReasonUnsupportedScheme   = "UNSUPPORTED_SCHEME"
	ReasonReservedAlias       = "RESERVED"
	ReasonInvalidFormat       = "INVALID_FORMAT"
	ReasonDuplicateAlias      = "DUPLICATE"
	ReasonNotFound            = "NOT_FOUND"
	ReasonGenerationExhausted = "GENERATION_EXHAUSTED"
	ReasonGenerationCollision = "GENERATION_COLLISION"
	ReasonStorage             = "STORAGE_ERROR"
	ReasonAliasTaken          = "ALIAS_TAKEN"
)

var (
	ErrMalformedURL        = errors.BadRequest(ReasonMalformedURL, "invalid url")
	ErrMissingHost         = errors.BadRequest(ReasonMissingHost, "url must include a host")
	ErrUnsupportedScheme   = errors.BadRequest(ReasonUnsupportedScheme, "unsupported url scheme")
	ErrReservedAlias       = errors.BadRequest(ReasonReservedAlias, "alias is reserved and cannot be used")
	ErrInvalidAlias        = errors.BadRequest(ReasonInvalidFormat, "invalid alias")
	ErrDuplicateAlias      = errors.Conflict(ReasonDuplicateAlias, "alias already exists")
	ErrAliasNotFound       = errors.NotFound(ReasonNotFound, "alias not found")
	ErrGenerationExhausted = errors.InternalServer(ReasonGenerationExhausted, "failed to generate a unique alias")
	ErrGenerationCollision = errors.Conflict(ReasonGenerationCollision, "generated alias was taken concurrently, retry the request")
	ErrStorage             = errors.InternalServer(ReasonStorage, "storage failure")

	// ErrAliasTaken is returned by repositories when a save violates the alias unique constraint.
	ErrAliasTaken = errors.Conflict(ReasonAliasTaken, "alias unique constraint violated")
)

// FormatReason explains why an alias failed format validation.
type FormatReason string

const (
	NullAlias         FormatReason = "NULL_ALIAS"
	TooShort          FormatReason = "TOO_SHORT"
	TooLong           FormatReason = "TOO_LONG"
	InvalidCharacters FormatReason = "INVALID_CHARACTERS"
)

// InvalidFormat returns an INVALID_FORMAT error carrying the violated rule.
func InvalidFormat(alias string, reason FormatReason) *errors.Error {
	var msg string
	switch reason {
	case NullAlias:
		msg = "invalid alias: alias must not be null"
	case TooShort:
		msg = "invalid alias '" + alias + "': must be at least " + strconv.Itoa(MinAliasLength) + " characters long"
	case TooLong:
		msg = "invalid alias '" + alias + "': must be at most " + strconv.Itoa(MaxAliasLength) + " characters long"
	default:
		msg = "invalid alias '" + alias + "': may contain only letters, digits, hyphens and underscores"
	}
	return errors.BadRequest(ReasonInvalidFormat, msg).
		WithMetadata(map[string]string{"reason": string(reason)})
}

// FormatReasonOf extracts the violated rule from an INVALID_FORMAT error.
func FormatReasonOf(err error) (FormatReason, bool) {
	if !errors.Is(err, ErrInvalidAlias) {
		return "", false
	}
	reason, ok := errors.FromError(err).GetMetadata()["reason"]
	return FormatReason(reason), ok
}

// GenerationExhausted returns a GENERATION_EXHAUSTED error recording the attempt budget.
func GenerationExhausted(attempts int) *errors.Error {
	return errors.InternalServer(ReasonGenerationExhausted,
		"failed to generate a unique alias after "+strconv.Itoa(attempts)+" attempts").
		WithMetadata(map[string]string{"attempts": strconv.Itoa(attempts)})
}

// StorageError wraps an infrastructure failure. Domain errors pass through untouched.
func StorageError(err error) error {
	if err == nil {
		return nil
	}
	if se := new(errors.Error); errors.As(err, &se) {
		return err
	}
	return ErrStorage.WithCause(err)
}
