package router

import (
	"net/http"

	"github.com/Renal37/quickserve/internal/middlewares"
	"github.com/Renal37/quickserve/internal/models"
)

type unreadCountResponse struct {
	Count int `json:"count"`
}

func ListNotifications(w http.ResponseWriter, r *http.Request) {
	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if notificationService == nil || user == nil {
		return
	}

	notifications, err := (*notificationService).List(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, notifications)
}

func GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if notificationService == nil || user == nil {
		return
	}

	count, err := (*notificationService).UnreadCount(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, unreadCountResponse{Count: count})
}

func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	notificationID, ok := uuidParam(w, r, "notificationID")
	if !ok {
		return
	}

	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if notificationService == nil || user == nil {
		return
	}

	if err := (*notificationService).MarkRead(r.Context(), user.ID, notificationID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if notificationService == nil || user == nil {
		return
	}

	if err := (*notificationService).MarkAllRead(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func DeleteNotification(w http.ResponseWriter, r *http.Request) {
	notificationID, ok := uuidParam(w, r, "notificationID")
	if !ok {
		return
	}

	notificationService := middlewares.GetServiceFromContext[models.NotificationService](w, r, middlewares.NotificationServiceKey)
	user := middlewares.GetUserFromContext(w, r)
	if notificationService == nil || user == nil {
		return
	}

	if err := (*notificationService).Delete(r.Context(), user.ID, notificationID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
