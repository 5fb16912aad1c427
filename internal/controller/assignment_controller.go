package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
)

type AssignmentController struct {
	assignmentService service.AssignmentService
}

func NewAssignmentController(assignmentService service.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// CreateAssignment godoc
// @Summary Assign a test to a consultante
// @Description One active assignment per (test, consultante) pair. Consultores may only assign to their own consultantes.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.CreateAssignmentRequest true "Assignment data"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown test or invalid consultante"
// @Failure 403 {object} dto.ErrorResponse "Consultante belongs to another consultor"
// @Failure 409 {object} dto.ErrorResponse "Duplicate active assignment"
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateAssignment: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.assignmentService.Create(sess, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssignments godoc
// @Summary List visible assignments
// @Description Admins see all, consultores the ones they created, consultantes their own.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AssignmentResponse
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	sess, _ := session.Current(ctx)
	ctx.JSON(http.StatusOK, c.assignmentService.ListFor(sess))
}

// GetAssignment godoc
// @Summary Get one assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	resp, err := c.assignmentService.Get(sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAssignment godoc
// @Summary Start or resume a test
// @Description Flips a pending assignment to in_progress and returns the test plus saved progress. Overdue assignments are rejected unchanged.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.StartTestResponse
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already completed or past due"
// @Router /assignments/{id}/start [post]
func (c *AssignmentController) StartAssignment(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	resp, err := c.assignmentService.Start(sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveProgress godoc
// @Summary Autosave in-progress answers
// @Description Replaces the saved answers wholesale and stamps lastSavedAt.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param progress body dto.SaveProgressRequest true "Current answers"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already completed"
// @Router /assignments/{id}/progress [put]
func (c *AssignmentController) SaveProgress(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	var req dto.SaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveProgress: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.assignmentService.SaveProgress(sess, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAssignment godoc
// @Summary Submit final answers
// @Description Validates every answer against the test, records the result and completes the assignment.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param submission body dto.SubmitRequest true "Final answers"
// @Success 201 {object} dto.ResultSummary
// @Failure 400 {object} dto.ErrorResponse "Incomplete or invalid answers"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already completed"
// @Router /assignments/{id}/submit [post]
func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAssignment: Failed to bind JSON")
		bindError(ctx, err)
		return
	}

	resp, err := c.assignmentService.Submit(sess, ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}
