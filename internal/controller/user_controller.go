package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Description Creates a user with a unique username. A consultante must reference an existing consultor.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body dto.CreateUserRequest true "User data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateUser: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.userService.Create(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListUsers godoc
// @Summary (Admin) List all users
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.userService.List())
}

// GetUser godoc
// @Summary (Admin) Get a user
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	resp, err := c.userService.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateUser godoc
// @Summary (Admin) Update a user
// @Description Applies only the provided fields; everything else keeps its stored value.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateUser: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.userService.Update(ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Description Removes the user. Records referencing the id are kept and rendered with the raw id.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if !c.userService.Delete(ctx.Param("id")) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "resource not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}

// MyConsultantes godoc
// @Summary (Consultor) List owned consultantes
// @Description Returns the caller's consultantes with their active assignment counts.
// @Tags Consultor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ConsultanteSummary
// @Router /consultantes [get]
func (c *UserController) MyConsultantes(ctx *gin.Context) {
	sess, ok := session.Current(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "not authenticated"})
		return
	}
	ctx.JSON(http.StatusOK, c.userService.Consultantes(sess.User.ID))
}
