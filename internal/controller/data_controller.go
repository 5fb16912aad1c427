package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dcastano/evalia/internal/dto"
	"github.com/dcastano/evalia/internal/event"
	"github.com/dcastano/evalia/internal/service"
)

// DataController exposes the admin data-management surface: exports, the
// destructive reset and the change-notification stream.
type DataController struct {
	exportService service.ExportService
	bus           *event.Bus
}

func NewDataController(exportService service.ExportService, bus *event.Bus) *DataController {
	return &DataController{exportService: exportService, bus: bus}
}

// ExportCollection godoc
// @Summary Download one collection as JSON
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Param name path string true "Collection name" Enums(users, tests, assignments, results)
// @Success 200 {string} string "The collection document"
// @Failure 400 {object} dto.ErrorResponse "Unknown collection"
// @Router /data/export/{name} [get]
func (c *DataController) ExportCollection(ctx *gin.Context) {
	filename, data, err := c.exportService.Collection(ctx.Param("name"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/json", data)
}

// ExportAll godoc
// @Summary Download the whole store as one JSON file
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Success 200 {string} string "The full data document"
// @Router /data/export [get]
func (c *DataController) ExportAll(ctx *gin.Context) {
	data, err := c.exportService.Full()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+service.FullExportFilename+`"`)
	ctx.Data(http.StatusOK, "application/json", data)
}

// ExportToDirectory godoc
// @Summary Write every collection to a server directory
// @Description One file per collection with fixed filenames. Per-file failures are combined into a single error.
// @Tags Data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param target body dto.ExportDirectoryRequest true "Target directory"
// @Success 200 {object} dto.StatusResponse
// @Failure 500 {object} dto.ErrorResponse "One or more files failed"
// @Router /data/export-directory [post]
func (c *DataController) ExportToDirectory(ctx *gin.Context) {
	var req dto.ExportDirectoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}
	if err := c.exportService.ToDirectory(req.Dir); err != nil {
		log.Error().Err(err).Str("dir", req.Dir).Msg("directory export failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "export failed", Details: []string{err.Error()},
		})
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "exported"})
}

// ExportToBucket godoc
// @Summary Upload every collection to the configured bucket
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ExportBucketResponse
// @Failure 503 {object} dto.ErrorResponse "Bucket export not configured"
// @Router /data/export-bucket [post]
func (c *DataController) ExportToBucket(ctx *gin.Context) {
	objects, err := c.exportService.ToBucket(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrBucketNotConfigured) {
			ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: err.Error()})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ExportBucketResponse{Objects: objects})
}

// ResetData godoc
// @Summary (Admin) Reset the store to its bootstrap data
// @Description Deletes the durable cache and reloads every collection from the bootstrap source. Destructive.
// @Tags Data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatusResponse
// @Router /data/reset [post]
func (c *DataController) ResetData(ctx *gin.Context) {
	if err := c.exportService.Reset(ctx.Request.Context()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StatusResponse{Status: "reset"})
}

// Events godoc
// @Summary Subscribe to store change notifications
// @Description Server-sent events stream; one "change" event per committed mutation.
// @Tags Data
// @Produce text/event-stream
// @Security BearerAuth
// @Router /data/events [get]
func (c *DataController) Events(ctx *gin.Context) {
	changes := make(chan event.Change, 16)
	cancel := c.bus.Subscribe(event.StoreChanged, func(data interface{}) {
		if change, ok := data.(event.Change); ok {
			select {
			case changes <- change:
			default: // drop when the client is too slow
			}
		}
	})
	defer cancel()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Stream(func(w io.Writer) bool {
		select {
		case change := <-changes:
			ctx.SSEvent("change", change)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
