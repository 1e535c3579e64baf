package queries

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler returns the order, its line items and its history
// oldest first. Missing and soft-deleted orders are NotFound; orders the
// actor may not see are Forbidden.
type GetOrderQueryHandler struct {
	db      *gorm.DB
	catalog ports.RestaurantCatalog
	policy  services.AuthorizationPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB, catalog ports.RestaurantCatalog) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, catalog: catalog, policy: services.NewAuthorizationPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	var row orderRow
	err := db.Table("orders").
		Where("id = ? AND deleted_at IS NULL", id.Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderView{}, errs.NewObjectNotFoundError("orderID", id)
	}
	if err != nil {
		return OrderView{}, err
	}

	var items []lineItemRow
	if err = db.Table("order_line_items").
		Where("order_id = ?", id.Bytes()).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return OrderView{}, err
	}

	view, err := row.view(items)
	if err != nil {
		return OrderView{}, err
	}

	restaurant, err := h.catalog.FindByID(ctx, view.RestaurantID)
	if err != nil {
		return OrderView{}, err
	}
	parties := services.OrderParties{CustomerID: view.CustomerID, OwnerID: restaurant.OwnerID, RiderID: view.RiderID}
	if err = h.policy.CanView(query.Actor(), parties); err != nil {
		return OrderView{}, err
	}

	var history []historyRow
	if err = db.Table("order_status_history").
		Where("order_id = ?", id.Bytes()).
		Order("seq ASC").
		Find(&history).Error; err != nil {
		return OrderView{}, err
	}
	view.History = make([]StatusChangeView, 0, len(history))
	for _, h := range history {
		change, changeErr := h.view()
		if changeErr != nil {
			return OrderView{}, changeErr
		}
		view.History = append(view.History, change)
	}

	return view, nil
}
