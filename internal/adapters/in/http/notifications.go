package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListNotifications handles GET /api/v1/notifications?isRead=&page=&limit=.
func (s *Server) ListNotifications(c echo.Context) error {
	var isRead *bool
	if err := queryParam(c, "isRead", &isRead); err != nil {
		return err
	}
	var page, limit *int
	if err := queryParam(c, "page", &page); err != nil {
		return err
	}
	if err := queryParam(c, "limit", &limit); err != nil {
		return err
	}

	query, err := queries.NewListNotificationsQuery(actorFrom(c).ID(), isRead, deref(page), deref(limit))
	if err != nil {
		return err
	}
	result, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	items := make([]NotificationResponse, 0, len(result.Items))
	for _, v := range result.Items {
		items = append(items, toNotificationResponse(v))
	}
	return success(c, http.StatusOK, "Notifications fetched", map[string]any{
		"notifications": items,
		"pagination": PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// MarkNotificationRead handles PUT /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkNotificationReadCommand(actorFrom(c).ID(), id)
	if err != nil {
		return err
	}
	if err = s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllNotificationsRead handles PUT /api/v1/notifications/read-all.
func (s *Server) MarkAllNotificationsRead(c echo.Context) error {
	cmd, err := commands.NewMarkAllNotificationsReadCommand(actorFrom(c).ID())
	if err != nil {
		return err
	}
	updated, err := s.handlers.MarkAllNotificationsRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "All notifications marked as read", map[string]int64{"updated": updated})
}

// UnreadCount handles GET /api/v1/notifications/unread-count.
func (s *Server) UnreadCount(c echo.Context) error {
	query, err := queries.NewUnreadCountQuery(actorFrom(c).ID())
	if err != nil {
		return err
	}
	count, err := s.handlers.UnreadCount.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Unread count fetched", map[string]int64{"count": count})
}
