package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/common"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Authorize godoc
// @Summary      Get the Zoho consent URL
// @Description  Returns the URL the user must visit to grant CRM access.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth [get]
func (h *AuthHandler) Authorize(w http.ResponseWriter, r *http.Request) *common.AppError {
	authURL := h.service.BuildAuthorizationURL()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"auth_url": authURL})
	return nil
}

// Callback godoc
// @Summary      OAuth redirect callback
// @Description  Exchanges the authorization code for tokens and persists them.
// @Tags         auth
// @Produce      json
// @Param        code  query  string  true  "Authorization code issued by Zoho"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /callback [get]
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) *common.AppError {
	code := r.URL.Query().Get("code")

	authResponse, err := h.service.HandleCallback(r.Context(), code)
	if err != nil {
		var incomplete *service.IncompleteTokenResponseError
		switch {
		case errors.Is(err, service.ErrMissingCode):
			return common.NewAppError(http.StatusBadRequest, "Authorization code not found", nil)
		case errors.As(err, &incomplete):
			// The provider answered, just without a full token set. Echo its
			// payload so the caller can see what went wrong.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"auth_response": incomplete.Response,
				"note":          "Missing refresh_token, access_token or api_domain in auth response.",
			})
			return nil
		default:
			return common.NewAppError(http.StatusInternalServerError, "Failed to process callback", err).
				WithDetails(err.Error())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"auth_response": authResponse,
		"note":          "Tokens fetched and saved successfully.",
	})
	return nil
}
