package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qivook/qivook-engine/internal/domain"
	"github.com/qivook/qivook-engine/internal/loader"
	"github.com/qivook/qivook-engine/internal/logging"
)

// Handler handles HTTP requests for the country data API.
type Handler struct {
	loader         *loader.Loader
	serviceName    string
	serviceVersion string
	logger         logging.Logger
}

// NewHandler creates a new API handler.
func NewHandler(countryLoader *loader.Loader, serviceName, serviceVersion string, logger logging.Logger) *Handler {
	return &Handler{
		loader:         countryLoader,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		logger:         logger,
	}
}

// countryFromParam validates the :code path parameter. On failure it writes
// the error response and returns false.
func (h *Handler) countryFromParam(c *gin.Context) (domain.CountryCode, bool) {
	code := domain.CountryCode(strings.ToUpper(c.Param("code")))
	if !code.IsValid() {
		h.logger.Warn("unsupported country code", logging.String("code", c.Param("code")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported country code"})
		return "", false
	}
	return code, true
}

// GetCountry handles GET /api/v1/countries/:code
func (h *Handler) GetCountry(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.loader.Profile(c.Request.Context(), country))
}

// GetSuppliers handles GET /api/v1/countries/:code/suppliers
// Supports q (substring search), category, and verified query parameters.
func (h *Handler) GetSuppliers(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	query := c.Query("q")
	category := domain.SupplierCategory(c.Query("category"))

	var suppliers []domain.CountrySupplier
	if query != "" || category != "" {
		suppliers = h.loader.SearchSuppliers(c.Request.Context(), country, query, category)
	} else {
		suppliers = h.loader.Suppliers(c.Request.Context(), country)
	}

	if verifiedParam := c.Query("verified"); verifiedParam != "" {
		verified, err := strconv.ParseBool(verifiedParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "verified must be a boolean"})
			return
		}
		filtered := make([]domain.CountrySupplier, 0, len(suppliers))
		for _, s := range suppliers {
			if s.Verified == verified {
				filtered = append(filtered, s)
			}
		}
		suppliers = filtered
	}

	c.JSON(http.StatusOK, SuppliersListResponse{
		Suppliers: suppliers,
		Total:     len(suppliers),
	})
}

// GetInfrastructure handles GET /api/v1/countries/:code/infrastructure
func (h *Handler) GetInfrastructure(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	infrastructure := h.loader.Infrastructure(c.Request.Context(), country)
	c.JSON(http.StatusOK, InfrastructureListResponse{
		Infrastructure: infrastructure,
		Total:          len(infrastructure),
	})
}

// GetPricing handles GET /api/v1/countries/:code/pricing
func (h *Handler) GetPricing(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	pricing := h.loader.Pricing(c.Request.Context(), country)
	c.JSON(http.StatusOK, PricingListResponse{
		Pricing: pricing,
		Total:   len(pricing),
	})
}

// GetGovernment handles GET /api/v1/countries/:code/government
func (h *Handler) GetGovernment(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	contacts := h.loader.Government(c.Request.Context(), country)
	c.JSON(http.StatusOK, GovernmentListResponse{
		Contacts: contacts,
		Total:    len(contacts),
	})
}

// GetStats handles GET /api/v1/countries/:code/stats
func (h *Handler) GetStats(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.loader.Stats(c.Request.Context(), country))
}

// Reload handles POST /api/v1/countries/:code/reload
// Forces a reload of the country data, bypassing the TTL cache.
func (h *Handler) Reload(c *gin.Context) {
	country, ok := h.countryFromParam(c)
	if !ok {
		return
	}

	h.logger.Info("forced country data reload", logging.String("country", string(country)))

	data := h.loader.Get(c.Request.Context(), country, true)
	c.JSON(http.StatusOK, ReloadResponse{
		Message:      "country data reloaded",
		Country:      country,
		Completeness: data.Profile.Completeness,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.serviceVersion,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
