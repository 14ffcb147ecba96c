package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sewakantor/models"
	"sewakantor/services/catalog"
	"sewakantor/utils"
)

// CityHandler serves the city list the catalog filters on.
type CityHandler struct {
	Catalog catalog.CatalogService
}

func NewCityHandler(svc catalog.CatalogService) *CityHandler {
	return &CityHandler{Catalog: svc}
}

// ListCities handles GET /api/v1/cities.
func (h *CityHandler) ListCities(c *gin.Context) {
	cities, err := h.Catalog.ListCities(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("city list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list cities")
		return
	}
	respond(c, http.StatusOK, cities, "Cities retrieved")
}

// CreateCity handles POST /api/v1/admin/cities.
func (h *CityHandler) CreateCity(c *gin.Context) {
	var city models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		respondError(c, http.StatusBadRequest, "invalid city payload")
		return
	}
	if city.Name == "" {
		respondError(c, http.StatusUnprocessableEntity, "name is required")
		return
	}

	if err := h.Catalog.CreateCity(c.Request.Context(), &city); err != nil {
		utils.GetLogger().Error("city create failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create city")
		return
	}
	respond(c, http.StatusCreated, city, "City created")
}

// UpdateCity handles PUT /api/v1/admin/cities/:id.
func (h *CityHandler) UpdateCity(c *gin.Context) {
	var city models.City
	if err := c.ShouldBindJSON(&city); err != nil {
		respondError(c, http.StatusBadRequest, "invalid city payload")
		return
	}
	city.ID = c.Param("id")

	if err := h.Catalog.UpdateCity(c.Request.Context(), &city); err != nil {
		respondError(c, http.StatusNotFound, "city not found")
		return
	}
	respond(c, http.StatusOK, city, "City updated")
}

// DeleteCity handles DELETE /api/v1/admin/cities/:id.
func (h *CityHandler) DeleteCity(c *gin.Context) {
	if err := h.Catalog.DeleteCity(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, http.StatusNotFound, "city not found")
		return
	}
	respond(c, http.StatusOK, nil, "City deleted")
}
