package order

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// MaxQuantity bounds a single line so that quantities fit the storage column
// and line totals stay far from int64 overflow.
const MaxQuantity = 1000

// LineItem snapshots a menu item's name and price at the moment of ordering.
// Later menu changes never alter an existing order.
type LineItem struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	lineTotal  kernel.Money
	guard      guard.ConstructorGuard
}

func NewLineItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	item := LineItem{
		menuItemID: menuItemID,
		name:       strings.TrimSpace(name),
		unitPrice:  unitPrice,
		quantity:   quantity,
	}

	var nameErr, quantityErr error
	if item.name == "" {
		nameErr = errs.NewValueIsRequiredError("line item name")
	}
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	} else if quantity > MaxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	if err := errors.Join(menuItemID.Validate(), unitPrice.Validate(), nameErr, quantityErr); err != nil {
		return LineItem{}, err
	}

	lineTotal, err := unitPrice.Multiply(quantity)
	if err != nil {
		return LineItem{}, err
	}
	item.lineTotal = lineTotal

	item.guard = guard.NewConstructorGuard()
	return item, nil
}

func (i LineItem) MenuItemID() kernel.UUID {
	return i.menuItemID
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// LineTotal is unit price times quantity.
func (i LineItem) LineTotal() kernel.Money {
	return i.lineTotal
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}
