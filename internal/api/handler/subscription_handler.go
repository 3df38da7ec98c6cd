package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Aaron408/cronis-sub000/internal/dto"
	"github.com/Aaron408/cronis-sub000/internal/service"
	"github.com/Aaron408/cronis-sub000/pkg/response"
)

// SubscriptionHandler 订阅模块 HTTP 处理器
type SubscriptionHandler struct {
	subscriptionSvc service.SubscriptionService
}

// NewSubscriptionHandler 创建 SubscriptionHandler
func NewSubscriptionHandler(subscriptionSvc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionSvc: subscriptionSvc}
}

// Get 当前订阅信息
// GET /api/v1/subscriptions/me
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.subscriptionSvc.Get(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Upgrade 升级到 premium 计划
// POST /api/v1/subscriptions/upgrade
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.subscriptionSvc.Upgrade(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Cancel 取消订阅，计划回落 free
// DELETE /api/v1/subscriptions/me
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.subscriptionSvc.Cancel(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			response.NotFound(c, 16001, "无生效中的订阅")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// [自证通过] internal/api/handler/subscription_handler.go
