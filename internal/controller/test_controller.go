package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
)

type TestController struct {
	testService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{testService: testService}
}

// CreateTest godoc
// @Summary Create a test
// @Description Authors a test with at least one question. Closed and multiple questions need two or more options.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.CreateTestRequest true "Test data"
// @Success 201 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid question set or image"
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.testService.Create(sess, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary List visible tests
// @Description Admins see every test, consultores only their own.
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummary
// @Router /tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	sess, _ := session.Current(ctx)
	ctx.JSON(http.StatusOK, c.testService.ListFor(sess))
}

// GetTest godoc
// @Summary Get a test with its questions
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	resp, err := c.testService.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateTest godoc
// @Summary Update a test
// @Description Only the author or an admin may update. Provided fields replace the stored ones.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Param test body dto.UpdateTestRequest true "Fields to change"
// @Success 200 {object} dto.TestResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	var req dto.UpdateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateTest: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.testService.Update(sess, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTest godoc
// @Summary Delete a test
// @Description Only the author or an admin may delete. Existing assignments keep the raw test id.
// @Tags Tests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Test ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	removed, err := c.testService.Delete(sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if !removed {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "resource not found"})
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
}
