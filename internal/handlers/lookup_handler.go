package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/lookup"
)

// LookupHandler proxies barcode lookups to the metadata service
type LookupHandler struct {
	client *lookup.Client
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(client *lookup.Client) *LookupHandler {
	return &LookupHandler{client: client}
}

// RegisterLookupRoutes registers barcode lookup routes
func (h *LookupHandler) RegisterLookupRoutes(g *echo.Group) {
	g.GET("/lookup/:barcode", h.LookupBarcode)
}

// LookupBarcode resolves a scanned barcode to release metadata
func (h *LookupHandler) LookupBarcode(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	barcode := c.Param("barcode")
	if barcode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing barcode")
	}

	release, err := h.client.LookupBarcode(c.Request().Context(), barcode)
	if err != nil {
		if err == lookup.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "No release found for this barcode")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, release)
}
