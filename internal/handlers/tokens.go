package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/go-chi/chi/v5"
)

type TokenHandler struct {
	tokenRepo repository.APITokenRepository
	baseURL   string
}

func NewTokenHandler(tokenRepo repository.APITokenRepository, baseURL string) *TokenHandler {
	return &TokenHandler{tokenRepo: tokenRepo, baseURL: baseURL}
}

func (handler *TokenHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokens, err := handler.tokenRepo.FindByUser(ctx, middleware.GetUser(ctx).ID)
	if err != nil {
		writeError(w, err, "listing tokens")
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

// Create issues a token. The raw value is only ever returned here; ical tokens also
// get the feed URL they unlock.
func (handler *TokenHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var body struct {
		Name  string            `json:"name"`
		Scope models.TokenScope `json:"scope"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err, "decoding token")
		return
	}

	var errs models.ValidationErrors
	if strings.TrimSpace(body.Name) == "" {
		errs.Add("name", "name is required")
	}
	switch body.Scope {
	case "":
		body.Scope = models.TokenScopeAPI
	case models.TokenScopeAPI, models.TokenScopeICal:
	default:
		errs.Add("scope", "scope must be api or ical")
	}
	if err := errs.Err(); err != nil {
		writeError(w, err, "validating token")
		return
	}

	rawToken, err := generateToken()
	if err != nil {
		writeError(w, err, "generating token")
		return
	}
	created, err := handler.tokenRepo.Create(ctx, models.APIToken{
		Name:            strings.TrimSpace(body.Name),
		TokenHash:       repository.HashToken(rawToken),
		Scope:           body.Scope,
		CreatedByUserID: user.ID,
	})
	if err != nil {
		writeError(w, err, "creating token")
		return
	}

	response := map[string]interface{}{
		"id":    created.ID,
		"name":  created.Name,
		"scope": created.Scope,
		"token": rawToken,
	}
	if created.Scope == models.TokenScopeICal {
		response["url"] = handler.baseURL + "/ical?token=" + rawToken
	}
	writeJSON(w, http.StatusCreated, response)
}

func (handler *TokenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := handler.tokenRepo.Delete(ctx, middleware.GetUser(ctx).ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err, "deleting token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
