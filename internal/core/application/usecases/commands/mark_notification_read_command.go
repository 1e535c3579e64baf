package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand marks one notification of the recipient as
// read.
type MarkNotificationReadCommand struct {
	recipientID    kernel.UUID
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(recipientID, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	var recipientErr, notificationErr error
	if err := recipientID.Validate(); err != nil {
		recipientErr = errs.NewValueIsRequiredErrorWithCause("recipientID", err)
	}
	if err := notificationID.Validate(); err != nil {
		notificationErr = errs.NewValueIsRequiredErrorWithCause("notificationID", err)
	}
	if err := errors.Join(recipientErr, notificationErr); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return MarkNotificationReadCommand{
		recipientID:    recipientID,
		notificationID: notificationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

var ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
	"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
)

// MarkAllNotificationsReadCommand marks the whole inbox of the recipient as
// read.
type MarkAllNotificationsReadCommand struct {
	recipientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand(recipientID kernel.UUID) (MarkAllNotificationsReadCommand, error) {
	if err := recipientID.Validate(); err != nil {
		return MarkAllNotificationsReadCommand{}, errs.NewValueIsRequiredErrorWithCause("recipientID", err)
	}
	return MarkAllNotificationsReadCommand{recipientID: recipientID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

func (c MarkAllNotificationsReadCommand) RecipientID() kernel.UUID {
	return c.recipientID
}
