package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/repositories"
	"gorm.io/gorm"
)

// VinylHandler handles catalogue item CRUD
type VinylHandler struct {
	vinylRepository  repositories.VinylRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewVinylHandler creates a new VinylHandler
func NewVinylHandler(vinylRepo repositories.VinylRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *VinylHandler {
	return &VinylHandler{
		vinylRepository:  vinylRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterVinylRoutes registers catalogue routes
func (h *VinylHandler) RegisterVinylRoutes(g *echo.Group) {
	g.POST("", h.CreateVinyl)
	g.GET("", h.GetOwnVinyls)
	g.GET("/:id", h.GetVinyl)
	g.GET("/user/:id", h.GetUserVinyls)
	g.PUT("/:id", h.UpdateVinyl)
	g.DELETE("/:id", h.DeleteVinyl)
}

// CreateVinyl adds an item to the caller's catalogue
func (h *VinylHandler) CreateVinyl(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateVinylRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	format := req.Format
	if format == "" {
		format = models.FormatVinyl
	}

	vinyl := &models.Vinyl{
		UserID:       currentUserID,
		Title:        req.Title,
		Artist:       req.Artist,
		Year:         req.Year,
		Genre:        req.Genre,
		Barcode:      req.Barcode,
		Format:       format,
		CoverURL:     req.CoverURL,
		Description:  req.Description,
		GiftFromID:   req.GiftFromID,
		SharedWithID: req.SharedWithID,
	}

	if err := h.vinylRepository.CreateVinyl(vinyl); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, vinyl)
}

// GetOwnVinyls returns the caller's catalogue, newest first
func (h *VinylHandler) GetOwnVinyls(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinyls, err := h.vinylRepository.GetVinylsByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, vinyls)
}

// GetVinyl returns a single item, gated by the owner's visibility
func (h *VinylHandler) GetVinyl(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinyl, err := h.loadVinyl(c)
	if err != nil {
		return err
	}

	if err := h.checkVisibility(currentUserID, vinyl.UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, vinyl)
}

// GetUserVinyls returns another account's catalogue, gated by visibility
func (h *VinylHandler) GetUserVinyls(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ownerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.checkVisibility(currentUserID, uint(ownerID)); err != nil {
		return err
	}

	vinyls, err := h.vinylRepository.GetVinylsByUserID(uint(ownerID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, vinyls)
}

// UpdateVinyl edits an item; owner only
func (h *VinylHandler) UpdateVinyl(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinyl, err := h.loadVinyl(c)
	if err != nil {
		return err
	}

	if vinyl.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this item")
	}

	var req models.UpdateVinylRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != nil {
		vinyl.Title = *req.Title
	}
	if req.Artist != nil {
		vinyl.Artist = *req.Artist
	}
	if req.Year != nil {
		vinyl.Year = *req.Year
	}
	if req.Genre != nil {
		vinyl.Genre = *req.Genre
	}
	if req.Format != nil {
		vinyl.Format = *req.Format
	}
	if req.CoverURL != nil {
		vinyl.CoverURL = *req.CoverURL
	}
	if req.Description != nil {
		vinyl.Description = *req.Description
	}

	if err := h.vinylRepository.UpdateVinyl(vinyl); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, vinyl)
}

// DeleteVinyl hard-deletes an item and, via cascade, its interactions;
// owner only
func (h *VinylHandler) DeleteVinyl(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinyl, err := h.loadVinyl(c)
	if err != nil {
		return err
	}

	if vinyl.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this item")
	}

	if err := h.vinylRepository.DeleteVinyl(vinyl.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *VinylHandler) loadVinyl(c echo.Context) (*models.Vinyl, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid vinyl ID")
	}

	vinyl, err := h.vinylRepository.GetVinylByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Vinyl not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return vinyl, nil
}

func (h *VinylHandler) checkVisibility(requesterID, ownerID uint) error {
	return checkAccountVisibility(h.userRepository, h.followRepository, requesterID, ownerID)
}
