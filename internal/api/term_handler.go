package api

import (
	"log/slog"
	"net/http"

	"github.com/termdeck/termdeck-api/internal/api/shared"
	"github.com/termdeck/termdeck-api/internal/domain"
	"github.com/termdeck/termdeck-api/internal/platform/logger"
	"github.com/termdeck/termdeck-api/internal/service"
)

// TermHandler handles term-related HTTP requests
type TermHandler struct {
	termService service.TermService
	logger      *slog.Logger
}

// NewTermHandler creates a new TermHandler
func NewTermHandler(termService service.TermService, logger *slog.Logger) *TermHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TermHandler")
	}

	return &TermHandler{
		termService: termService,
		logger:      logger.With(slog.String("component", "term_handler")),
	}
}

// ListTerms handles GET /terms requests.
func (h *TermHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	filter, err := parseTermFilter(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.termService.ListTerms(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TermListResponse{
		Items:      termsToResponse(page.Items),
		TotalItems: page.TotalItems,
	})
}

// ListForLearn handles GET /terms/for-learn requests.
// It returns the terms due for review right now, oldest first.
func (h *TermHandler) ListForLearn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	terms, err := h.termService.ListTermsForLearn(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build study set")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ForLearnResponse{Items: termsToResponse(terms)})
}

// CreateTerm handles POST /terms requests.
func (h *TermHandler) CreateTerm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateTermRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	term, err := h.termService.CreateTerm(r.Context(), userID, req.Term, req.Definition, req.ImageURL)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, termToResponse(term))
}

// GetTerm handles GET /terms/{id} requests.
func (h *TermHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, termID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	term, err := h.termService.GetTerm(r.Context(), userID, termID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, termToResponse(term))
}

// UpdateTerm handles PUT /terms/{id} requests.
// Only the fields present in the body are changed.
func (h *TermHandler) UpdateTerm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, termID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTermRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update, err := req.ToUpdate()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	term, err := h.termService.UpdateTerm(r.Context(), userID, termID, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, termToResponse(term))
}

// ChangeLevel handles PATCH /terms/{id}/level requests.
// The action is validated here, so only Lower, Keep and Raise reach the
// service.
func (h *TermHandler) ChangeLevel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, termID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ChangeLevelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	action, err := domain.ParseReviewAction(*req.Action)
	if err != nil {
		log.Debug("rejected review action", slog.Int("action_value", *req.Action))
		HandleAPIError(w, r, err, "")
		return
	}

	term, err := h.termService.ChangeLevel(r.Context(), userID, termID, action)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change level")
		return
	}

	log.Debug("term reviewed",
		slog.String("term_id", termID.String()),
		slog.String("action", action.String()),
		slog.Int("new_level", int(term.Level)))
	shared.RespondWithJSON(w, r, http.StatusOK, termToResponse(term))
}

// DeleteTerm handles DELETE /terms/{id} requests.
func (h *TermHandler) DeleteTerm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, termID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.termService.DeleteTerm(r.Context(), userID, termID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
