package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/go-task-api/internal/services"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("register request")

	user, err := h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			abort(c, newConflictError(services.ErrEmailTaken.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	// The password hash never leaves the service layer.
	c.JSON(http.StatusCreated, registerResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

type tokenRequest struct {
	Username string `form:"username" binding:"required,email,max=255"`
	Password string `form:"password" binding:"required,min=6,max=255"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleToken exchanges form-encoded credentials for a bearer token.
// The username field carries the email.
func (h *handlerImpl) HandleToken(c *gin.Context) {
	var req tokenRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.auth.Authenticate(c, req.Username, req.Password)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to authenticate")
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			abort(c, newUnauthorizedError(services.ErrInvalidCredentials.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	accessToken, _, err := h.auth.IssueToken(user.ID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to issue token")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}
