package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Authenticate a user
// @Description Exchanges username/password for a bearer token and the sanitized user profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Login: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current session profile
// @Description Returns the sanitized user behind the presented token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	sess, ok := session.Current(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "not authenticated"})
		return
	}
	u := sess.User.Sanitized()
	ctx.JSON(http.StatusOK, dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		FullName:    u.FullName,
		Email:       u.Email,
		ConsultorID: u.ConsultorID,
		CreatedAt:   u.CreatedAt,
	})
}
