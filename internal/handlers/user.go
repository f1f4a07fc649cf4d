package handlers

import (
	"errors"
	"net/http"

	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/services"
)

// multipart framing allowance on top of the avatar itself
const avatarRequestOverhead = 1 << 20

type UserHandler struct {
	accountService *services.AccountService
	avatarService  *services.AvatarService
	authService    *services.AuthService
}

func NewUserHandler(accountService *services.AccountService, avatarService *services.AvatarService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		avatarService:  avatarService,
		authService:    authService,
	}
}

func (handler *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

func (handler *UserHandler) Settings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	settings, err := handler.accountService.Settings(ctx, middleware.GetUser(ctx).ID)
	if err != nil {
		writeError(w, err, "loading settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (handler *UserHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var input services.SettingsInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err, "decoding settings")
		return
	}

	settings, err := handler.accountService.UpdateSettings(ctx, middleware.GetUser(ctx).ID, input)
	if err != nil {
		writeError(w, err, "updating settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (handler *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxAvatarSize+avatarRequestOverhead)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, models.ValidationErrors{{Field: "file", Message: "file too large, max size is 2MB"}}, "reading avatar")
			return
		}
		writeError(w, models.ValidationErrors{{Field: "file", Message: "no file provided"}}, "reading avatar")
		return
	}
	defer file.Close()

	imageURL, err := handler.avatarService.Upload(ctx, middleware.GetUser(ctx).ID, file)
	if err != nil {
		writeError(w, err, "uploading avatar")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"imageUrl": imageURL,
	})
}

// Delete removes the account after the caller echoes the confirmation phrase, then
// drops the session.
func (handler *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body struct {
		Confirm string `json:"confirm"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err, "decoding account deletion")
		return
	}

	err := handler.accountService.Delete(ctx, middleware.GetUser(ctx).ID, body.Confirm)
	if errors.Is(err, services.ErrConfirmationRequired) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "confirmation required, send confirm: " + services.DeleteConfirmation,
		})
		return
	}
	if err != nil {
		writeError(w, err, "deleting account")
		return
	}

	handler.authService.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
