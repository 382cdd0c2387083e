package handlers

import (
	"fmt"
	"strings"

	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/repositories"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the handler tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(user.DisplayName), strings.ToLower(query)) {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeFollowRepo struct {
	follows []models.Follow
	users   *fakeUserRepo
	nextID  uint
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, nextID: 1}
}

func (r *fakeFollowRepo) CreateFollow(follow *models.Follow) error {
	for _, f := range r.follows {
		if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	follow.ID = r.nextID
	r.nextID++
	r.follows = append(r.follows, *follow)
	return nil
}

func (r *fakeFollowRepo) GetFollow(followerID, followingID uint) (*models.Follow, error) {
	for i := range r.follows {
		if r.follows[i].FollowerID == followerID && r.follows[i].FollowingID == followingID {
			copied := r.follows[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFollowRepo) AcceptFollow(followerID, followingID uint) (int64, error) {
	for i := range r.follows {
		if r.follows[i].FollowerID == followerID && r.follows[i].FollowingID == followingID &&
			r.follows[i].Status == models.FollowStatusPending {
			r.follows[i].Status = models.FollowStatusAccepted
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) (int64, error) {
	for i := range r.follows {
		if r.follows[i].FollowerID == followerID && r.follows[i].FollowingID == followingID {
			r.follows = append(r.follows[:i], r.follows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeFollowRepo) GetFollowStatus(followerID, followingID uint) (string, error) {
	for _, f := range r.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return f.Status, nil
		}
	}
	return models.FollowStatusNone, nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint) ([]models.User, error) {
	var out []models.User
	for _, f := range r.follows {
		if f.FollowingID == userID && f.Status == models.FollowStatusAccepted {
			if user, err := r.users.GetUserByID(f.FollowerID); err == nil {
				out = append(out, *user)
			}
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) GetFollowing(userID uint) ([]models.User, error) {
	var out []models.User
	for _, f := range r.follows {
		if f.FollowerID == userID && f.Status == models.FollowStatusAccepted {
			if user, err := r.users.GetUserByID(f.FollowingID); err == nil {
				out = append(out, *user)
			}
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) GetFollowersCount(userID uint) (int64, error) {
	users, _ := r.GetFollowers(userID)
	return int64(len(users)), nil
}

func (r *fakeFollowRepo) GetFollowingCount(userID uint) (int64, error) {
	users, _ := r.GetFollowing(userID)
	return int64(len(users)), nil
}

func (r *fakeFollowRepo) GetPendingRequests(userID uint) ([]models.Follow, error) {
	var out []models.Follow
	for _, f := range r.follows {
		if f.FollowingID == userID && f.Status == models.FollowStatusPending {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeVinylRepo struct {
	vinyls map[uint]*models.Vinyl
	feed   []repositories.VinylWithCounts
	nextID uint
}

func newFakeVinylRepo() *fakeVinylRepo {
	return &fakeVinylRepo{vinyls: make(map[uint]*models.Vinyl), nextID: 1}
}

func (r *fakeVinylRepo) CreateVinyl(vinyl *models.Vinyl) error {
	vinyl.ID = r.nextID
	r.nextID++
	copied := *vinyl
	r.vinyls[vinyl.ID] = &copied
	return nil
}

func (r *fakeVinylRepo) GetVinylByID(id uint) (*models.Vinyl, error) {
	if vinyl, ok := r.vinyls[id]; ok {
		copied := *vinyl
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVinylRepo) GetVinylsByUserID(userID uint) ([]models.Vinyl, error) {
	var out []models.Vinyl
	for _, vinyl := range r.vinyls {
		if vinyl.UserID == userID {
			out = append(out, *vinyl)
		}
	}
	return out, nil
}

func (r *fakeVinylRepo) GetVinylsCount(userID uint) (int64, error) {
	vinyls, _ := r.GetVinylsByUserID(userID)
	return int64(len(vinyls)), nil
}

func (r *fakeVinylRepo) UpdateVinyl(vinyl *models.Vinyl) error {
	copied := *vinyl
	r.vinyls[vinyl.ID] = &copied
	return nil
}

func (r *fakeVinylRepo) DeleteVinyl(id uint) error {
	delete(r.vinyls, id)
	return nil
}

func (r *fakeVinylRepo) GetRecentFeed(userID uint, limit, offset int) ([]repositories.VinylWithCounts, int64, error) {
	total := int64(len(r.feed))
	if offset >= len(r.feed) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.feed) {
		end = len(r.feed)
	}
	return r.feed[offset:end], total, nil
}

type fakeLikeRepo struct {
	likes map[string]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]bool)}
}

func likeKey(vinylID, userID uint) string {
	return fmt.Sprintf("%d:%d", vinylID, userID)
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	key := likeKey(like.VinylID, like.UserID)
	if r.likes[key] {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	r.likes[key] = true
	return nil
}

func (r *fakeLikeRepo) DeleteLike(vinylID, userID uint) error {
	key := likeKey(vinylID, userID)
	if !r.likes[key] {
		return fmt.Errorf("like not found")
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeLikeRepo) HasUserLikedVinyl(vinylID, userID uint) (bool, error) {
	return r.likes[likeKey(vinylID, userID)], nil
}

func (r *fakeLikeRepo) GetLikesCount(vinylID uint) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("%d:", vinylID)
	for key := range r.likes {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	if comment, ok := r.comments[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) GetCommentsByVinylID(vinylID uint) ([]models.Comment, error) {
	var out []models.Comment
	for id := uint(1); id < r.nextID; id++ {
		if comment, ok := r.comments[id]; ok && comment.VinylID == vinylID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsCount(vinylID uint) (int64, error) {
	comments, _ := r.GetCommentsByVinylID(vinylID)
	return int64(len(comments)), nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	delete(r.comments, id)
	return nil
}

type fakeCommentLikeRepo struct {
	likes map[string]bool
}

func newFakeCommentLikeRepo() *fakeCommentLikeRepo {
	return &fakeCommentLikeRepo{likes: make(map[string]bool)}
}

func (r *fakeCommentLikeRepo) CreateCommentLike(like *models.CommentLike) error {
	key := likeKey(like.CommentID, like.UserID)
	if r.likes[key] {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	r.likes[key] = true
	return nil
}

func (r *fakeCommentLikeRepo) DeleteCommentLike(commentID, userID uint) error {
	key := likeKey(commentID, userID)
	if !r.likes[key] {
		return fmt.Errorf("comment like not found")
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeCommentLikeRepo) HasUserLikedComment(commentID, userID uint) (bool, error) {
	return r.likes[likeKey(commentID, userID)], nil
}

func (r *fakeCommentLikeRepo) GetLikesCount(commentID uint) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("%d:", commentID)
	for key := range r.likes {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, limit, offset int) ([]models.Notification, int64, error) {
	var matched []models.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			matched = append(matched, n)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(recipientID uint) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].IsRead = true
		}
	}
	return nil
}

type fakeSubscriptionRepo struct {
	subs   []models.PushSubscription
	nextID uint
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{nextID: 1}
}

func (r *fakeSubscriptionRepo) UpsertSubscription(sub *models.PushSubscription) error {
	for i := range r.subs {
		if r.subs[i].UserID == sub.UserID && r.subs[i].Endpoint == sub.Endpoint {
			r.subs[i].P256dh = sub.P256dh
			r.subs[i].Auth = sub.Auth
			return nil
		}
	}
	sub.ID = r.nextID
	r.nextID++
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *fakeSubscriptionRepo) GetByUserID(userID uint) ([]models.PushSubscription, error) {
	var out []models.PushSubscription
	for _, sub := range r.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) DeleteByEndpoint(userID uint, endpoint string) error {
	for i := range r.subs {
		if r.subs[i].UserID == userID && r.subs[i].Endpoint == endpoint {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) DeleteByID(id uint) error {
	for i := range r.subs {
		if r.subs[i].ID == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return nil
		}
	}
	return nil
}

var (
	_ repositories.UserRepository             = (*fakeUserRepo)(nil)
	_ repositories.FollowRepository           = (*fakeFollowRepo)(nil)
	_ repositories.VinylRepository            = (*fakeVinylRepo)(nil)
	_ repositories.LikeRepository             = (*fakeLikeRepo)(nil)
	_ repositories.CommentRepository          = (*fakeCommentRepo)(nil)
	_ repositories.CommentLikeRepository      = (*fakeCommentLikeRepo)(nil)
	_ repositories.NotificationRepository     = (*fakeNotificationRepo)(nil)
	_ repositories.PushSubscriptionRepository = (*fakeSubscriptionRepo)(nil)
)
