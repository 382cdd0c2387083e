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

// CommentHandler handles threaded comments and comment likes
type CommentHandler struct {
	commentRepository     repositories.CommentRepository
	commentLikeRepository repositories.CommentLikeRepository
	vinylRepository       repositories.VinylRepository
	userRepository        repositories.UserRepository
	followRepository      repositories.FollowRepository
	notifier              *notifier.Notifier
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	commentLikeRepo repositories.CommentLikeRepository,
	vinylRepo repositories.VinylRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	n *notifier.Notifier,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:     commentRepo,
		commentLikeRepository: commentLikeRepo,
		vinylRepository:       vinylRepo,
		userRepository:        userRepo,
		followRepository:      followRepo,
		notifier:              n,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments/:itemId", h.GetComments)
	g.POST("/comments/:itemId", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
}

// GetComments returns an item's comments threaded one level deep, each with
// author fields, like count and the caller's like state
func (h *CommentHandler) GetComments(c echo.Context) error {
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

	// Reading the thread follows the item's visibility rule
	if err := checkAccountVisibility(h.userRepository, h.followRepository, currentUserID, vinyl.UserID); err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByVinylID(uint(vinylID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.buildThread(comments, currentUserID))
}

// buildThread enriches comments and nests replies under their parents
func (h *CommentHandler) buildThread(comments []models.Comment, currentUserID uint) []models.CommentResponse {
	userCache := make(map[uint]models.UserCompact)
	enrich := func(comment models.Comment) models.CommentResponse {
		resp := models.CommentResponse{Comment: comment}
		if author, ok := userCache[comment.UserID]; ok {
			resp.Author = author
		} else if user, err := h.userRepository.GetUserByID(comment.UserID); err == nil {
			compact := user.ToCompact()
			userCache[comment.UserID] = compact
			resp.Author = compact
		}
		resp.LikesCount, _ = h.commentLikeRepository.GetLikesCount(comment.ID)
		resp.HasLiked, _ = h.commentLikeRepository.HasUserLikedComment(comment.ID, currentUserID)
		return resp
	}

	topLevel := make([]models.CommentResponse, 0)
	replies := make(map[uint][]models.CommentResponse)
	for _, comment := range comments {
		enriched := enrich(comment)
		if comment.ParentID != nil {
			replies[*comment.ParentID] = append(replies[*comment.ParentID], enriched)
		} else {
			topLevel = append(topLevel, enriched)
		}
	}
	for i := range topLevel {
		topLevel[i].Replies = replies[topLevel[i].ID]
	}
	return topLevel
}

// CreateComment adds a comment (optionally a reply) to an item
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	vinylID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vinyl ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	vinyl, err := h.vinylRepository.GetVinylByID(uint(vinylID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Vinyl not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := checkAccountVisibility(h.userRepository, h.followRepository, currentUserID, vinyl.UserID); err != nil {
		return err
	}

	if req.ParentID != nil {
		parent, err := h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil || parent.VinylID != uint(vinylID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid parent comment")
		}
	}

	comment := &models.Comment{
		VinylID:  uint(vinylID),
		UserID:   currentUserID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifier.Notify(vinyl.UserID, currentUserID, models.NotificationVinylComment, vinyl.ID)

	resp := models.CommentResponse{Comment: *comment}
	if author, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		resp.Author = author.ToCompact()
	}

	return c.JSON(http.StatusCreated, resp)
}

// DeleteComment removes a comment. Only the author may delete it; the item
// owner cannot delete others' comments.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleCommentLike flips the caller's like state on a comment. The
// notification goes to the comment's author with the parent item as the
// deep-link reference.
func (h *CommentHandler) ToggleCommentLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The comment lives on an item; liking it is gated by that item's owner
	if vinyl, err := h.vinylRepository.GetVinylByID(comment.VinylID); err == nil {
		if err := checkAccountVisibility(h.userRepository, h.followRepository, currentUserID, vinyl.UserID); err != nil {
			return err
		}
	}

	hasLiked, err := h.commentLikeRepository.HasUserLikedComment(uint(commentID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if hasLiked {
		if err := h.commentLikeRepository.DeleteCommentLike(uint(commentID), currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}

	like := &models.CommentLike{
		CommentID: uint(commentID),
		UserID:    currentUserID,
	}
	if err := h.commentLikeRepository.CreateCommentLike(like); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "Already liked")
	}

	h.notifier.Notify(comment.UserID, currentUserID, models.NotificationCommentLike, comment.VinylID)

	return c.JSON(http.StatusOK, echo.Map{"liked": true})
}
