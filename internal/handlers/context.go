package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/repositories"
	"gorm.io/gorm"
)

// getUserIDFromContext extracts the authenticated user id from the JWT
// claims stored by the auth middleware; zero means unauthenticated
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// canViewUser applies the visibility rule: an account's catalogue and stats
// are visible iff the account is public, the requester is the owner, or an
// accepted edge requester→owner exists.
func canViewUser(followRepo repositories.FollowRepository, requesterID uint, owner *models.User) (bool, error) {
	if owner.IsPublic || requesterID == owner.ID {
		return true, nil
	}
	status, err := followRepo.GetFollowStatus(requesterID, owner.ID)
	if err != nil {
		return false, err
	}
	return status == models.FollowStatusAccepted, nil
}

// checkAccountVisibility resolves the owner and applies the visibility rule,
// returning the HTTP error to bubble up when the requester may not view the
// account. Interactions on an item are gated the same way as the item itself.
func checkAccountVisibility(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, requesterID, ownerID uint) error {
	owner, err := userRepo.GetUserByID(ownerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	visible, err := canViewUser(followRepo, requesterID, owner)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !visible {
		return echo.NewHTTPError(http.StatusForbidden, "This account is private")
	}
	return nil
}
