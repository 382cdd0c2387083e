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

// FollowHandler handles the follow graph: request, accept, reject, unfollow
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notifier.Notifier
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, n *notifier.Notifier) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         n,
	}
}

// RegisterFollowRoutes registers follow-graph routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.FollowUser)
	g.POST("/accept/:id", h.AcceptFollow)
	g.POST("/reject/:id", h.RejectFollow)
	g.DELETE("/unfollow/:id", h.UnfollowUser)
	g.GET("/is-following/:id", h.IsFollowing)
	g.GET("/followers", h.GetFollowers)
	g.GET("/following", h.GetFollowing)
	g.GET("/requests/pending", h.GetPendingRequests)
}

// FollowUser requests a follow edge toward the target account. Public
// targets accept immediately; private targets get a pending edge.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// An edge in either state blocks a second request for the ordered pair
	status, err := h.followRepository.GetFollowStatus(currentUserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if status != models.FollowStatusNone {
		return echo.NewHTTPError(http.StatusConflict, "Follow relationship already exists")
	}

	edgeStatus := models.FollowStatusPending
	notifType := models.NotificationFollowRequest
	if target.IsPublic {
		edgeStatus = models.FollowStatusAccepted
		notifType = models.NotificationNewFollower
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: uint(targetID),
		Status:      edgeStatus,
	}

	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Notify(uint(targetID), currentUserID, notifType, currentUserID)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": edgeStatus}})
}

// AcceptFollow transitions a pending edge (:id → caller) to accepted. A
// missing edge is a silent success: the UPDATE affects zero rows.
func (h *FollowHandler) AcceptFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	affected, err := h.followRepository.AcceptFollow(uint(followerID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only a real transition notifies the requester; a repeated accept
	// affects zero rows and stays quiet
	if affected > 0 {
		h.notifier.Notify(uint(followerID), currentUserID, models.NotificationFollowAccepted, currentUserID)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RejectFollow deletes the edge :id → caller
func (h *FollowHandler) RejectFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.followRepository.DeleteFollow(uint(followerID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnfollowUser deletes the edge caller → :id
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": models.FollowStatusNone}})
}

// IsFollowing returns the edge status toward :id and whether :id follows
// the caller back (accepted only)
func (h *FollowHandler) IsFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	status, err := h.followRepository.GetFollowStatus(currentUserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reverseStatus, err := h.followRepository.GetFollowStatus(uint(targetID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":      status,
		"follows_you": reverseStatus == models.FollowStatusAccepted,
	})
}

// GetFollowers lists accounts following the caller (accepted edges)
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.followRepository.GetFollowers(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, compactUsers(users))
}

// GetFollowing lists accounts the caller follows (accepted edges)
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.followRepository.GetFollowing(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, compactUsers(users))
}

// GetPendingRequests lists incoming pending follow requests with the
// requester's profile fields
func (h *FollowHandler) GetPendingRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.followRepository.GetPendingRequests(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type pendingRequest struct {
		models.Follow
		Requester models.UserCompact `json:"requester"`
	}

	out := make([]pendingRequest, 0, len(requests))
	for _, req := range requests {
		pr := pendingRequest{Follow: req}
		if user, err := h.userRepository.GetUserByID(req.FollowerID); err == nil {
			pr.Requester = user.ToCompact()
		}
		out = append(out, pr)
	}

	return c.JSON(http.StatusOK, out)
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
