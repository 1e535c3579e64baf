package notification

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Notification is a stored inbox entry. It starts unread; the only later
// change is marking it read.
type Notification struct {
	id           kernel.UUID
	recipientID  kernel.UUID
	typ          Type
	title        string
	message      string
	orderID      kernel.UUID
	restaurantID *kernel.UUID
	isRead       bool
	metadata     map[string]string
	createdAt    time.Time

	isConstructed bool
}

// NewNotification materializes an intent.
func NewNotification(id kernel.UUID, intent Intent, createdAt time.Time) (*Notification, error) {
	return build(id, intent.RecipientID, intent.Type, intent.Title, intent.Message,
		intent.OrderID, intent.RestaurantID, false, intent.Metadata, createdAt)
}

func RestoreNotification(
	id, recipientID kernel.UUID,
	typ Type,
	title, message string,
	orderID kernel.UUID,
	restaurantID *kernel.UUID,
	isRead bool,
	metadata map[string]string,
	createdAt time.Time,
) (*Notification, error) {
	return build(id, recipientID, typ, title, message, orderID, restaurantID, isRead, metadata, createdAt)
}

func build(
	id, recipientID kernel.UUID,
	typ Type,
	title, message string,
	orderID kernel.UUID,
	restaurantID *kernel.UUID,
	isRead bool,
	metadata map[string]string,
	createdAt time.Time,
) (*Notification, error) {
	var titleErr, messageErr error
	if strings.TrimSpace(title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if strings.TrimSpace(message) == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}
	if err := errors.Join(id.Validate(), recipientID.Validate(), orderID.Validate(), typ.Validate(),
		titleErr, messageErr); err != nil {
		return nil, err
	}

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	var restaurant *kernel.UUID
	if restaurantID != nil {
		r := *restaurantID
		restaurant = &r
	}

	return &Notification{
		id:            id,
		recipientID:   recipientID,
		typ:           typ,
		title:         title,
		message:       message,
		orderID:       orderID,
		restaurantID:  restaurant,
		isRead:        isRead,
		metadata:      meta,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID            { return n.id }
func (n *Notification) RecipientID() kernel.UUID   { return n.recipientID }
func (n *Notification) Type() Type                 { return n.typ }
func (n *Notification) Title() string              { return n.title }
func (n *Notification) Message() string            { return n.message }
func (n *Notification) OrderID() kernel.UUID       { return n.orderID }
func (n *Notification) RestaurantID() *kernel.UUID { return n.restaurantID }
func (n *Notification) IsRead() bool               { return n.isRead }
func (n *Notification) CreatedAt() time.Time       { return n.createdAt }

// Metadata returns a copy of the free-form key/value data.
func (n *Notification) Metadata() map[string]string {
	meta := make(map[string]string, len(n.metadata))
	for k, v := range n.metadata {
		meta[k] = v
	}
	return meta
}

// IsAddressedTo reports whether the notification belongs to recipientID.
func (n *Notification) IsAddressedTo(recipientID kernel.UUID) bool {
	return n.recipientID.IsEqual(recipientID)
}

func (n *Notification) MarkRead() {
	n.isRead = true
}
