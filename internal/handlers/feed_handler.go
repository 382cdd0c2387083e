package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/repositories"
)

// FeedHandler serves the follow-filtered recent feed
type FeedHandler struct {
	vinylRepository repositories.VinylRepository
	userRepository  repositories.UserRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(vinylRepo repositories.VinylRepository, userRepo repositories.UserRepository) *FeedHandler {
	return &FeedHandler{
		vinylRepository: vinylRepo,
		userRepository:  userRepo,
	}
}

// RegisterFeedRoutes registers feed routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed/recent", h.GetRecentFeed)
}

// FeedItem is a catalogue item with counts, the caller's like state, and
// the owner's display fields
type FeedItem struct {
	repositories.VinylWithCounts
	Owner models.UserCompact `json:"owner"`
}

// GetRecentFeed returns items from followed accounts ordered by addition
// time descending with id as tie-break, so pagination stays stable under
// concurrent inserts.
func (h *FeedHandler) GetRecentFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := h.vinylRepository.GetRecentFeed(currentUserID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ownerCache := make(map[uint]models.UserCompact)
	feed := make([]FeedItem, len(items))
	for i, item := range items {
		feed[i] = FeedItem{VinylWithCounts: item}
		if owner, ok := ownerCache[item.UserID]; ok {
			feed[i].Owner = owner
		} else if user, err := h.userRepository.GetUserByID(item.UserID); err == nil {
			compact := user.ToCompact()
			ownerCache[item.UserID] = compact
			feed[i].Owner = compact
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":    feed,
		"hasMore": int64(offset+len(feed)) < total,
		"total":   total,
	})
}
