package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	officeRepo "sewakantor/database/repository/office"
	"sewakantor/models"
	"sewakantor/services/catalog"
	"sewakantor/services/pricing"
	"sewakantor/utils"
)

// OfficeHandler serves the office catalog, public and admin sides.
type OfficeHandler struct {
	Catalog catalog.CatalogService
}

func NewOfficeHandler(svc catalog.CatalogService) *OfficeHandler {
	return &OfficeHandler{Catalog: svc}
}

// ListOffices handles GET /api/v1/offices. Only available offices are
// listed; unavailable and maintenance ones stay hidden from the public.
func (h *OfficeHandler) ListOffices(c *gin.Context) {
	criteria := searchCriteriaFromQuery(c)
	criteria.OnlyAvailable = true

	offices, total, err := h.Catalog.ListOffices(c.Request.Context(), criteria)
	if err != nil {
		utils.GetLogger().Error("office search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list offices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       offices,
		"pagination": pagination(criteria.Page, criteria.PerPage, total),
		"message":    "Offices retrieved successfully",
	})
}

// AdminListOffices handles GET /api/v1/admin/offices and includes offices
// in every status.
func (h *OfficeHandler) AdminListOffices(c *gin.Context) {
	criteria := searchCriteriaFromQuery(c)

	offices, total, err := h.Catalog.ListOffices(c.Request.Context(), criteria)
	if err != nil {
		utils.GetLogger().Error("office search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list offices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       offices,
		"pagination": pagination(criteria.Page, criteria.PerPage, total),
		"message":    "Offices retrieved successfully",
	})
}

// GetOffice handles GET /api/v1/offices/:id.
func (h *OfficeHandler) GetOffice(c *gin.Context) {
	office, err := h.Catalog.GetOffice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrOfficeNotFound) {
			respondError(c, http.StatusNotFound, "office not found")
			return
		}
		utils.GetLogger().Error("office lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to retrieve office")
		return
	}
	respond(c, http.StatusOK, office, "Office retrieved")
}

// QuoteOffice handles GET /api/v1/offices/:id/quote. It prices a stay
// without creating anything, so the client can show the breakdown before
// the customer commits.
func (h *OfficeHandler) QuoteOffice(c *gin.Context) {
	office, err := h.Catalog.GetOffice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrOfficeNotFound) {
			respondError(c, http.StatusNotFound, "office not found")
			return
		}
		utils.GetLogger().Error("office lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to retrieve office")
		return
	}

	period, err := models.ParsePeriod(c.Query("rental_type"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "rental_type must be daily, weekly or monthly")
		return
	}
	start, err := pricing.ParseDate(c.Query("start_date"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := pricing.ParseDate(c.Query("end_date"))
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "end_date must be YYYY-MM-DD")
		return
	}

	breakdown, days, err := pricing.Quote(office.Prices, period, start, end)
	if err != nil {
		if errors.Is(err, pricing.ErrTierUnavailable) {
			respondError(c, http.StatusUnprocessableEntity, "office has no "+string(period)+" rate")
			return
		}
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respond(c, http.StatusOK, gin.H{
		"office_id":     office.ID,
		"rental_type":   period,
		"duration_days": days,
		"breakdown":     breakdown,
	}, "Quote computed")
}

// CreateOffice handles POST /api/v1/admin/offices.
func (h *OfficeHandler) CreateOffice(c *gin.Context) {
	var office models.Office
	if err := c.ShouldBindJSON(&office); err != nil {
		respondError(c, http.StatusBadRequest, "invalid office payload")
		return
	}
	if office.Name == "" {
		respondError(c, http.StatusUnprocessableEntity, "name is required")
		return
	}

	if err := h.Catalog.CreateOffice(c.Request.Context(), &office); err != nil {
		utils.GetLogger().Error("office create failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create office")
		return
	}
	respond(c, http.StatusCreated, office, "Office created")
}

// UpdateOffice handles PUT /api/v1/admin/offices/:id.
func (h *OfficeHandler) UpdateOffice(c *gin.Context) {
	existing, err := h.Catalog.GetOffice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "office not found")
		return
	}

	var office models.Office
	if err := c.ShouldBindJSON(&office); err != nil {
		respondError(c, http.StatusBadRequest, "invalid office payload")
		return
	}
	office.ID = existing.ID
	office.CreatedAt = existing.CreatedAt

	if err := h.Catalog.UpdateOffice(c.Request.Context(), &office); err != nil {
		utils.GetLogger().Error("office update failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update office")
		return
	}
	respond(c, http.StatusOK, office, "Office updated")
}

// DeleteOffice handles DELETE /api/v1/admin/offices/:id.
func (h *OfficeHandler) DeleteOffice(c *gin.Context) {
	if err := h.Catalog.DeleteOffice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, http.StatusNotFound, "office not found")
		return
	}
	respond(c, http.StatusOK, nil, "Office deleted")
}

func searchCriteriaFromQuery(c *gin.Context) officeRepo.OfficeSearchCriteria {
	criteria := officeRepo.OfficeSearchCriteria{
		CityID: c.Query("city_id"),
		Search: c.Query("search"),
	}
	criteria.MinCapacity, _ = strconv.Atoi(c.Query("min_capacity"))
	criteria.MaxCapacity, _ = strconv.Atoi(c.Query("max_capacity"))
	if v, err := strconv.ParseInt(c.Query("min_price"), 10, 64); err == nil {
		criteria.MinPrice = models.Money(v)
	}
	if v, err := strconv.ParseInt(c.Query("max_price"), 10, 64); err == nil {
		criteria.MaxPrice = models.Money(v)
	}
	if p, err := models.ParsePeriod(c.Query("price_period")); err == nil {
		criteria.PricePeriod = p
	}
	criteria.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	criteria.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return criteria
}
