package handler

import (
	"strconv"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SourceFileHandler handles import file API endpoints
type SourceFileHandler struct {
	BaseHandler
	sourceFileService *ledgerapp.SourceFileService
}

// NewSourceFileHandler creates a new SourceFileHandler
func NewSourceFileHandler(sourceFileService *ledgerapp.SourceFileService) *SourceFileHandler {
	return &SourceFileHandler{sourceFileService: sourceFileService}
}

// RegisterRoutes registers source file routes
func (h *SourceFileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/source-files")
	{
		files.POST("", h.Create)
		files.GET("", h.List)
		files.GET("/:id", h.GetByID)
		files.POST("/:id/clients/:clientId", h.AttachToClient)
		files.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @ID           createSourceFile
// @Summary      Register an import file
// @Description  Registers the file and returns a presigned URL for uploading
// @Description  its contents
// @Tags         source-files
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.CreateSourceFileRequest true "Import file registration request"
// @Success      201 {object} APIResponse[ledgerapp.SourceFileResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /source-files [post]
func (h *SourceFileHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateSourceFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.UploadedBy = getActor(c)

	file, err := h.sourceFileService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, file)
}

// GetByID godoc
// @ID           getSourceFileById
// @Summary      Get import file by ID
// @Tags         source-files
// @Produce      json
// @Param        id path string true "Source file ID" format(uuid)
// @Success      200 {object} APIResponse[ledgerapp.SourceFileResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /source-files/{id} [get]
func (h *SourceFileHandler) GetByID(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid source file ID format")
		return
	}

	file, err := h.sourceFileService.GetByID(c.Request.Context(), fileID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, file)
}

// List godoc
// @ID           listSourceFiles
// @Summary      List import files
// @Tags         source-files
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]ledgerapp.SourceFileResponse]
// @Router       /source-files [get]
func (h *SourceFileHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	files, err := h.sourceFileService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, files)
}

// AttachToClient godoc
// @ID           attachSourceFileToClient
// @Summary      Attach an import file to a client
// @Description  Records which import file a client's data came from
// @Tags         source-files
// @Produce      json
// @Param        id path string true "Source file ID" format(uuid)
// @Param        clientId path string true "Client ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /source-files/{id}/clients/{clientId} [post]
func (h *SourceFileHandler) AttachToClient(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid source file ID format")
		return
	}

	clientID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.sourceFileService.AttachToClient(c.Request.Context(), fileID, clientID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteSourceFile
// @Summary      Delete an import file
// @Tags         source-files
// @Produce      json
// @Param        id path string true "Source file ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /source-files/{id} [delete]
func (h *SourceFileHandler) Delete(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid source file ID format")
		return
	}

	if err := h.sourceFileService.Delete(c.Request.Context(), fileID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
