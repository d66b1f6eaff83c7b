package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/store"
)

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is expected to be placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	return shared.GetUserID(r.Context())
}

// getPathUUID extracts a UUID from the URL path parameters.
//
// Returns:
//   - (uuid.UUID, nil): The parsed UUID if valid
//   - (uuid.Nil, error): if the parameter is missing or malformed
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleUserID extracts the user ID from the context and writes a 401
// response when it is missing.
func handleUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// handleUserIDAndPathUUID is a composite helper that extracts both the user ID from context
// and a UUID from the path parameters. It writes an error response if either extraction fails.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Warn("invalid "+paramName,
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", domain.ErrValidation, err), "")
		return false
	}
	return true
}

// parseTermFilter reads the listing query parameters. Absent parameters keep
// their defaults; malformed ones are rejected.
func parseTermFilter(q url.Values) (store.TermFilter, error) {
	var filter store.TermFilter

	intParam := func(name string) (int, bool, error) {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return 0, false, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, domain.NewValidationError(name, "must be an integer", domain.ErrValidation)
		}
		return n, true, nil
	}

	page, ok, err := intParam("page")
	if err != nil {
		return filter, err
	}
	if ok {
		if page < 1 {
			return filter, domain.NewValidationError("page", "must be at least 1", domain.ErrValidation)
		}
		filter.Page = page
	}

	perPage, ok, err := intParam("perPage")
	if err != nil {
		return filter, err
	}
	if ok {
		if perPage < 1 || perPage > store.MaxTermsPerPage {
			return filter, domain.NewValidationError("perPage",
				fmt.Sprintf("must be between 1 and %d", store.MaxTermsPerPage), domain.ErrValidation)
		}
		filter.PerPage = perPage
	}

	level, ok, err := intParam("level")
	if err != nil {
		return filter, err
	}
	if ok {
		lvl, err := domain.ParseLevel(level)
		if err != nil {
			return filter, err
		}
		filter.Level = &lvl
	}

	if sort := strings.TrimSpace(q.Get("sort")); sort != "" {
		filter.Sort = store.TermSort(sort)
		if !filter.Sort.Valid() {
			return filter, domain.NewValidationError("sort",
				"must be one of createAsc, createDesc, lvlChangeAsc, lvlChangeDesc", domain.ErrValidation)
		}
	}

	filter.Search = strings.TrimSpace(q.Get("searchQuery"))
	return filter, nil
}
