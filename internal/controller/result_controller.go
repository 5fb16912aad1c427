package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastano/evalia/internal/service"
	"github.com/dcastano/evalia/internal/session"
)

type ResultController struct {
	resultService service.ResultService
}

func NewResultController(resultService service.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// ListResults godoc
// @Summary List visible results
// @Description Admins see all, consultores their consultantes' results, consultantes their own.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResultSummary
// @Router /results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	sess, _ := session.Current(ctx)
	ctx.JSON(http.StatusOK, c.resultService.ListFor(sess))
}

// GetResult godoc
// @Summary Review a result
// @Description Resolves answers against the test; deleted questions or options fall back to their raw ids.
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result ID"
// @Success 200 {object} dto.ResultDetail
// @Failure 403 {object} dto.ErrorResponse "Result belongs to someone else"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	resp, err := c.resultService.Get(sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResultByAssignment godoc
// @Summary Review the result of an assignment
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.ResultDetail
// @Failure 404 {object} dto.ErrorResponse "No result for this assignment"
// @Router /assignments/{id}/result [get]
func (c *ResultController) ResultByAssignment(ctx *gin.Context) {
	sess, _ := session.Current(ctx)

	resp, err := c.resultService.ByAssignment(sess, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
