package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/notifier"
	"github.com/spincrate/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeHandler handles the like toggle on catalogue items
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	vinylRepository  repositories.VinylRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	notifier         *notifier.Notifier
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	vinylRepo repositories.VinylRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	n *notifier.Notifier,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:   likeRepo,
		vinylRepository:  vinylRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		notifier:         n,
	}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/:itemId", h.ToggleLike)
}

// ToggleLike flips the caller's like state on an item. Row presence is the
// state; the response carries the resulting boolean, not a count.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinylID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vinyl ID")
	}

	vinyl, err := h.vinylRepository.GetVinylByID(uint(vinylID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Vinyl not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Liking is gated the same way as viewing the item
	if err := checkAccountVisibility(h.userRepository, h.followRepository, currentUserID, vinyl.UserID); err != nil {
		return err
	}

	hasLiked, err := h.likeRepository.HasUserLikedVinyl(uint(vinylID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if hasLiked {
		if err := h.likeRepository.DeleteLike(uint(vinylID), currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}

	like := &models.Like{
		VinylID: uint(vinylID),
		UserID:  currentUserID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		// The unique index on (vinyl_id, user_id) catches a concurrent
		// double-toggle
		return echo.NewHTTPError(http.StatusConflict, "Already liked")
	}

	h.notifier.Notify(vinyl.UserID, currentUserID, models.NotificationVinylLike, vinyl.ID)

	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}
