package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
	"github.com/farruhbek/business_accounting_app/internal/middleware"
)

// sectionHandler handles HTTP requests for operating sections.
type sectionHandler struct {
	sectionService portssvc.SectionSvcFacade
}

func newSectionHandler(ss portssvc.SectionSvcFacade) *sectionHandler {
	return &sectionHandler{sectionService: ss}
}

// registerSectionRoutes registers routes related to sections.
func registerSectionRoutes(rg *gin.RouterGroup, sectionService portssvc.SectionSvcFacade) {
	h := newSectionHandler(sectionService)

	sections := rg.Group("/sections")
	{
		sections.POST("", h.createSection)
		sections.GET("", h.listSections)
		sections.GET("/:sectionID", h.getSection)
	}
}

// createSection godoc
// @Summary Register a section together with its pseudo-account
// @Tags sections
// @Accept json
// @Produce json
// @Param section body dto.CreateSectionRequest true "Section details"
// @Success 201 {object} dto.SectionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /sections [post]
func (h *sectionHandler) createSection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	section, err := h.sectionService.CreateSection(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create section")
		return
	}

	logger.Info("Section created", slog.String("section_id", section.SectionID))
	c.JSON(http.StatusCreated, dto.ToSectionResponse(section))
}

// getSection godoc
// @Summary Get a section
// @Tags sections
// @Produce json
// @Param sectionID path string true "Section ID"
// @Success 200 {object} dto.SectionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sections/{sectionID} [get]
func (h *sectionHandler) getSection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sectionID := c.Param("sectionID")

	section, err := h.sectionService.GetSectionByID(c.Request.Context(), sectionID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve section")
		return
	}
	c.JSON(http.StatusOK, dto.ToSectionResponse(section))
}

// listSections godoc
// @Summary List sections
// @Tags sections
// @Produce json
// @Success 200 {array} dto.SectionResponse
// @Security BearerAuth
// @Router /sections [get]
func (h *sectionHandler) listSections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	sections, err := h.sectionService.ListSections(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list sections")
		return
	}
	c.JSON(http.StatusOK, dto.ToSectionResponses(sections))
}
