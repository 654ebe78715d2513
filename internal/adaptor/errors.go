package adaptor

import (
	"errors"
	"net/http"
	"strconv"

	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors to the response envelope. Store
// failures are logged in full and answered with a generic message.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validation *usecase.ValidationError

	switch {
	case errors.As(err, &validation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		var fields any
		if len(validation.Fields) > 0 {
			fields = validation.Fields
		}
		utils.ResponseBadRequest(w, validation.Message, fields)

	case errors.Is(err, usecase.ErrReferentialConflict):
		log.Warn(operation+" rejected - still referenced",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Cannot delete movie: it is still scheduled in showtimes", nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Movie not found")

	case errors.Is(err, usecase.ErrGenreNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Genre not found")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parseInt returns def for empty, malformed or non-positive values.
func parseInt(value string, def int) int {
	if value == "" {
		return def
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return def
	}
	return result
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	return err == nil && b
}

func parseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
