package notification

import "fooddelivery/internal/core/domain/model/kernel"

// Intent is a notification that should be delivered but has not been stored
// yet. Intents are plain data so that they can be computed without I/O and
// dispatched after the order change has committed.
type Intent struct {
	RecipientID  kernel.UUID
	Type         Type
	Title        string
	Message      string
	OrderID      kernel.UUID
	RestaurantID *kernel.UUID
	Metadata     map[string]string
}
