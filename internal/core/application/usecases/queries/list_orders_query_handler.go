package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler applies the role filter:
//
//   - CUSTOMER sees their own orders
//   - RESTAURANT_OWNER sees orders of the restaurants they own; asking for a
//     restaurant they do not own is Forbidden
//   - RIDER asking for READY_FOR_PICKUP sees every ready order that is
//     unassigned or theirs; otherwise only orders assigned to them
//   - ADMIN sees everything and may filter by any restaurant
//
// Customers and riders cannot filter by restaurant; the filter is ignored.
// Line items are included, history is not.
type ListOrdersQueryHandler struct {
	db      *gorm.DB
	catalog ports.RestaurantCatalog
}

func NewListOrdersQueryHandler(db *gorm.DB, catalog ports.RestaurantCatalog) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, catalog: catalog}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Where("deleted_at IS NULL")
	a := query.Actor()
	status := query.Status()

	switch a.Role() {
	case actor.Customer:
		tx = tx.Where("customer_id = ?", a.ID().Bytes())

	case actor.RestaurantOwner:
		owned, err := h.catalog.ListOwnedBy(ctx, a.ID())
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return []OrderView{}, nil
		}
		if rid := query.RestaurantID(); rid != nil {
			isOwned := false
			for _, id := range owned {
				if id.IsEqual(*rid) {
					isOwned = true
					break
				}
			}
			if !isOwned {
				return nil, errs.NewForbiddenError("list orders", "restaurant belongs to another owner")
			}
			tx = tx.Where("restaurant_id = ?", rid.Bytes())
		} else {
			raw := make([]uuid.UUID, 0, len(owned))
			for _, id := range owned {
				raw = append(raw, id.Bytes())
			}
			tx = tx.Where("restaurant_id IN ?", raw)
		}

	case actor.Rider:
		if status != nil && *status == order.ReadyForPickup {
			tx = tx.Where("(rider_id IS NULL OR rider_id = ?)", a.ID().Bytes())
		} else {
			tx = tx.Where("rider_id = ?", a.ID().Bytes())
		}

	case actor.Admin:
		if rid := query.RestaurantID(); rid != nil {
			tx = tx.Where("restaurant_id = ?", rid.Bytes())
		}

	case actor.UnknownRole:
		return nil, errs.NewForbiddenError("list orders", "unknown role")
	}

	if status != nil {
		tx = tx.Where("status = ?", status.String())
	}

	var rows []orderRow
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []OrderView{}, nil
	}

	items, err := h.lineItems(ctx, rows)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.view(items[row.ID])
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}
	return views, nil
}

func (h ListOrdersQueryHandler) lineItems(ctx context.Context, rows []orderRow) (map[uuid.UUID][]lineItemRow, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var items []lineItemRow
	if err := h.db.WithContext(ctx).Table("order_line_items").
		Where("order_id IN ?", ids).
		Order("order_id, position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]lineItemRow, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	return byOrder, nil
}
