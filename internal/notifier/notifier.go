package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/spincrate/backend/internal/models"
	"github.com/spincrate/backend/internal/repositories"
)

// Payload is the message delivered through both the push and realtime
// channels
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// PushSender delivers one encrypted push message to a stored subscription
// and reports the provider's status code
type PushSender interface {
	Send(message []byte, sub *models.PushSubscription) (int, error)
}

// RealtimeEmitter pushes a payload to an account's live sessions
type RealtimeEmitter interface {
	Emit(userID uint, data interface{})
}

// Notifier persists a notification row and then best-effort delivers it via
// web push and the realtime channel. The row is written first and is the
// source of truth; channel failures never roll it back.
type Notifier struct {
	notificationRepo repositories.NotificationRepository
	subscriptionRepo repositories.PushSubscriptionRepository
	userRepo         repositories.UserRepository
	realtime         RealtimeEmitter
	push             PushSender
}

// NewNotifier creates a Notifier. push or realtime may be nil, in which case
// that channel is skipped.
func NewNotifier(
	notifRepo repositories.NotificationRepository,
	subRepo repositories.PushSubscriptionRepository,
	userRepo repositories.UserRepository,
	realtime RealtimeEmitter,
	push PushSender,
) *Notifier {
	return &Notifier{
		notificationRepo: notifRepo,
		subscriptionRepo: subRepo,
		userRepo:         userRepo,
		realtime:         realtime,
		push:             push,
	}
}

// Notify records and fans out one notification. Self-actions are suppressed
// entirely: no row, no delivery.
func (n *Notifier) Notify(recipientID, senderID uint, notifType string, referenceID uint) {
	if recipientID == senderID {
		return
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		ReferenceID: referenceID,
	}
	if err := n.notificationRepo.CreateNotification(notification); err != nil {
		log.Printf("notifier: failed to persist notification: %v", err)
		return
	}

	payload := n.buildPayload(senderID, notifType, referenceID)
	n.sendPush(recipientID, payload)
	if n.realtime != nil {
		n.realtime.Emit(recipientID, payload)
	}
}

func (n *Notifier) buildPayload(senderID uint, notifType string, referenceID uint) Payload {
	senderName := "Someone"
	if sender, err := n.userRepo.GetUserByID(senderID); err == nil {
		if sender.DisplayName != "" {
			senderName = sender.DisplayName
		} else {
			senderName = sender.Username
		}
	}

	switch notifType {
	case models.NotificationFollowRequest:
		return Payload{
			Title: "New follow request",
			Body:  senderName + " wants to follow you",
			URL:   fmt.Sprintf("/profile/%d", senderID),
		}
	case models.NotificationNewFollower:
		return Payload{
			Title: "New follower",
			Body:  senderName + " started following you",
			URL:   fmt.Sprintf("/profile/%d", senderID),
		}
	case models.NotificationFollowAccepted:
		return Payload{
			Title: "Follow request accepted",
			Body:  senderName + " accepted your follow request",
			URL:   fmt.Sprintf("/profile/%d", senderID),
		}
	case models.NotificationVinylLike:
		return Payload{
			Title: "New like",
			Body:  senderName + " liked your record",
			URL:   fmt.Sprintf("/vinyls/%d", referenceID),
		}
	case models.NotificationVinylComment:
		return Payload{
			Title: "New comment",
			Body:  senderName + " commented on your record",
			URL:   fmt.Sprintf("/vinyls/%d", referenceID),
		}
	case models.NotificationCommentLike:
		return Payload{
			Title: "New like",
			Body:  senderName + " liked your comment",
			URL:   fmt.Sprintf("/vinyls/%d", referenceID),
		}
	}
	return Payload{Title: "SpinCrate", Body: senderName + " interacted with you", URL: "/"}
}

// sendPush delivers the payload to every stored subscription of the
// recipient. A provider "gone" status removes the subscription row; any
// other failure is logged and swallowed.
func (n *Notifier) sendPush(recipientID uint, payload Payload) {
	if n.push == nil {
		return
	}

	subs, err := n.subscriptionRepo.GetByUserID(recipientID)
	if err != nil {
		log.Printf("notifier: failed to load push subscriptions for user %d: %v", recipientID, err)
		return
	}

	message, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notifier: failed to marshal push payload: %v", err)
		return
	}

	for i := range subs {
		status, err := n.push.Send(message, &subs[i])
		if err != nil {
			log.Printf("notifier: push delivery failed for user %d: %v", recipientID, err)
			continue
		}
		if status == http.StatusGone || status == http.StatusNotFound {
			if err := n.subscriptionRepo.DeleteByID(subs[i].ID); err != nil {
				log.Printf("notifier: failed to delete gone subscription %d: %v", subs[i].ID, err)
			}
		}
	}
}

// WebPushSender sends encrypted Web Push messages with VAPID authentication
type WebPushSender struct {
	options webpush.Options
}

// NewWebPushSender creates a WebPushSender with the server's VAPID key pair
func NewWebPushSender(subscriber, vapidPublicKey, vapidPrivateKey string) *WebPushSender {
	return &WebPushSender{
		options: webpush.Options{
			Subscriber:      subscriber,
			VAPIDPublicKey:  vapidPublicKey,
			VAPIDPrivateKey: vapidPrivateKey,
			TTL:             60,
		},
	}
}

func (s *WebPushSender) Send(message []byte, sub *models.PushSubscription) (int, error) {
	resp, err := webpush.SendNotification(message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &s.options)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
