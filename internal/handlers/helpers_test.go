package handlers

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/notifier"
	"github.com/spincrate/backend/validators"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// newTestContext builds an echo context with JWT claims already set, the way
// the auth middleware would leave them
func newTestContext(e *echo.Echo, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	httpReq := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// testWorld bundles the fakes and the wired notifier most handler tests need
type testWorld struct {
	users         *fakeUserRepo
	follows       *fakeFollowRepo
	vinyls        *fakeVinylRepo
	likes         *fakeLikeRepo
	comments      *fakeCommentRepo
	commentLikes  *fakeCommentLikeRepo
	notifications *fakeNotificationRepo
	subscriptions *fakeSubscriptionRepo
	notifier      *notifier.Notifier
}

func newTestWorld() *testWorld {
	w := &testWorld{
		users:         newFakeUserRepo(),
		vinyls:        newFakeVinylRepo(),
		likes:         newFakeLikeRepo(),
		comments:      newFakeCommentRepo(),
		commentLikes:  newFakeCommentLikeRepo(),
		notifications: newFakeNotificationRepo(),
		subscriptions: newFakeSubscriptionRepo(),
	}
	w.follows = newFakeFollowRepo(w.users)
	w.notifier = notifier.NewNotifier(w.notifications, w.subscriptions, w.users, nil, nil)
	return w
}

func (w *testWorld) addUser(username string, isPublic bool) *models.User {
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "x",
		DisplayName: username,
		IsPublic:    isPublic,
	}
	w.users.CreateUser(user)
	return user
}

func (w *testWorld) addVinyl(ownerID uint, title string) *models.Vinyl {
	vinyl := &models.Vinyl{
		UserID: ownerID,
		Title:  title,
		Artist: "Test Artist",
		Format: models.FormatVinyl,
	}
	w.vinyls.CreateVinyl(vinyl)
	return vinyl
}
