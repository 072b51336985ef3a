package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/SscSPs/personal_finance_app/internal/utils/statement"
	"github.com/gin-gonic/gin"
)

// maxStatementBytes caps uploaded statement files.
const maxStatementBytes = 5 << 20

type importHandler struct {
	importService portssvc.ImportSvc
	analytics     *utils.PosthogClientWrapper
}

func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvc, analytics *utils.PosthogClientWrapper) {
	h := &importHandler{importService: importService, analytics: analytics}

	imports := rg.Group("/imports")
	{
		imports.POST("/preview", h.preview)
		imports.POST("/commit", h.commit)
	}
}

// preview godoc
// @Summary Preview a bank statement
// @Description Parses a CSV or OFX statement into categorized drafts without storing anything. Lines that cannot be read are listed in "skipped".
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement file"
// @Param format formData string false "csv or ofx, detected when omitted"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /imports/preview [post]
func (h *importHandler) preview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Statement file missing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A statement file is required in the \"file\" field"})
		return
	}
	if fileHeader.Size > maxStatementBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Statement file is too large"})
		return
	}

	format := statement.Format(strings.ToLower(strings.TrimSpace(c.PostForm("format"))))
	if format != "" && format != statement.FormatCSV && format != statement.FormatOFX {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or ofx"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, err, "Failed to read statement file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxStatementBytes))
	if err != nil {
		respondWithError(c, err, "Failed to read statement file")
		return
	}

	result, err := h.importService.Preview(c.Request.Context(), userID, fileHeader.Filename, content, format)
	if err != nil {
		respondWithError(c, err, "Failed to parse statement")
		return
	}

	logger.Info("Statement parsed",
		slog.String("format", string(result.Format)),
		slog.Int("drafts", len(result.Drafts)),
		slog.Int("skipped", len(result.Skipped)))
	c.JSON(http.StatusOK, dto.ImportPreviewResponse{
		Format:  result.Format,
		Drafts:  result.Drafts,
		Skipped: result.Skipped,
	})
}

// commit godoc
// @Summary Import reviewed drafts
// @Description Stores the drafts in one database transaction. Drafts with an already imported externalId are counted as duplicates.
// @Tags imports
// @Accept json
// @Produce json
// @Param drafts body dto.ImportCommitRequest true "Drafts to import"
// @Success 201 {object} dto.ImportCommitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /imports/commit [post]
func (h *importHandler) commit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ImportCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.importService.Commit(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to import transactions")
		return
	}

	middleware.PosthogEvent(c, h.analytics, utils.EventImportCommitted, map[string]any{
		"imported":   resp.Imported,
		"duplicates": resp.Duplicates,
	})
	c.JSON(http.StatusCreated, resp)
}
