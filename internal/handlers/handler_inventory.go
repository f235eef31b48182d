package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/farruhbek/business_accounting_app/internal/core/ports/services"
	"github.com/farruhbek/business_accounting_app/internal/dto"
	"github.com/farruhbek/business_accounting_app/internal/middleware"
)

// inventoryHandler handles HTTP requests for products and raw materials.
// Stock levels are read-only here; they move only through ledger entries.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
	}

	materials := rg.Group("/raw-materials")
	{
		materials.POST("", h.createRawMaterial)
		materials.GET("", h.listRawMaterials)
		materials.GET("/:rawMaterialID", h.getRawMaterial)
	}
}

// createProduct godoc
// @Summary Register a sellable product
// @Tags inventory
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (h *inventoryHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product with its current stock
// @Tags inventory
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *inventoryHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.inventoryService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List products
// @Tags inventory
// @Produce json
// @Param sectionID query string false "Section filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (h *inventoryHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sectionID := c.Query("sectionID")
	limit, offset := pageParams(c)

	products, err := h.inventoryService.ListProducts(c.Request.Context(), sectionID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}

	responses := make([]dto.ProductResponse, len(products))
	for i := range products {
		responses[i] = dto.ToProductResponse(&products[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createRawMaterial godoc
// @Summary Register a raw material stock line
// @Tags inventory
// @Accept json
// @Produce json
// @Param material body dto.CreateRawMaterialRequest true "Raw material details"
// @Success 201 {object} dto.RawMaterialResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /raw-materials [post]
func (h *inventoryHandler) createRawMaterial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRawMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRawMaterial", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	material, err := h.inventoryService.CreateRawMaterial(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create raw material")
		return
	}

	logger.Info("Raw material created", slog.String("raw_material_id", material.RawMaterialID))
	c.JSON(http.StatusCreated, dto.ToRawMaterialResponse(material))
}

// getRawMaterial godoc
// @Summary Get a raw material with its current weight
// @Tags inventory
// @Produce json
// @Param rawMaterialID path string true "Raw material ID"
// @Success 200 {object} dto.RawMaterialResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /raw-materials/{rawMaterialID} [get]
func (h *inventoryHandler) getRawMaterial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawMaterialID := c.Param("rawMaterialID")

	material, err := h.inventoryService.GetRawMaterialByID(c.Request.Context(), rawMaterialID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve raw material")
		return
	}
	c.JSON(http.StatusOK, dto.ToRawMaterialResponse(material))
}

// listRawMaterials godoc
// @Summary List raw materials
// @Tags inventory
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.RawMaterialResponse
// @Security BearerAuth
// @Router /raw-materials [get]
func (h *inventoryHandler) listRawMaterials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, offset := pageParams(c)

	materials, err := h.inventoryService.ListRawMaterials(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list raw materials")
		return
	}

	responses := make([]dto.RawMaterialResponse, len(materials))
	for i := range materials {
		responses[i] = dto.ToRawMaterialResponse(&materials[i])
	}
	c.JSON(http.StatusOK, responses)
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
