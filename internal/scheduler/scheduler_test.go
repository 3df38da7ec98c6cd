package scheduler

import (
	"testing"
	"time"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

func TestHorizon_Empty(t *testing.T) {
	if _, _, ok := Horizon(nil, nil); ok {
		t.Error("无任何活动时 ok 应为 false")
	}
}

func TestHorizon_SpansAllDates(t *testing.T) {
	activities := []model.RecurringActivity{
		recurring("a1", 1, testDay.AddDate(0, 0, 2), testDay.AddDate(0, 0, 5)),
	}
	punctuals := []model.PunctualActivity{
		punctual(testDay, "10:00:00", "11:00:00"),
		punctual(testDay.AddDate(0, 0, 8), "10:00:00", "11:00:00"),
	}

	start, end, ok := Horizon(activities, punctuals)
	if !ok {
		t.Fatal("ok 应为 true")
	}
	if !start.Equal(DateOnly(testDay)) {
		t.Errorf("起点应为最早定点日期，实际=%v", start)
	}
	if !end.Equal(DateOnly(testDay.AddDate(0, 0, 8))) {
		t.Errorf("终点应为最晚定点日期，实际=%v", end)
	}
	if days := HorizonDays(start, end); days != 9 {
		t.Errorf("期望9天（双端含），实际=%d", days)
	}
}

func TestHorizon_RecurringOnly(t *testing.T) {
	activities := []model.RecurringActivity{
		recurring("a1", 0, testDay, testDay.AddDate(0, 0, 1)),
		recurring("a2", 2, testDay.AddDate(0, 0, -3), testDay),
	}

	start, end, ok := Horizon(activities, nil)
	if !ok {
		t.Fatal("ok 应为 true")
	}
	if HorizonDays(start, end) != 5 {
		t.Errorf("期望5天，实际=%d", HorizonDays(start, end))
	}
}

func TestWindowMinutes(t *testing.T) {
	m, err := WindowMinutes(testDay, "09:00:00", "17:00:00")
	if err != nil || m != 480 {
		t.Errorf("期望480分钟，实际=%d err=%v", m, err)
	}

	m, err = WindowMinutes(testDay, "17:00:00", "09:00:00")
	if err != nil || m != 0 {
		t.Errorf("倒置窗口应为0分钟，实际=%d err=%v", m, err)
	}
}

// 端到端场景：09:00–17:00、无定点活动、单个重要度2的活动
// → 当日恰有一条60分钟活动片段，其余为休息
func TestPlanDay_SingleHighImportanceActivity(t *testing.T) {
	activities := []model.RecurringActivity{
		recurring("a1", 2, testDay, testDay.AddDate(0, 0, 1)),
	}
	rng := &scriptedRand{seq: []int{0}} // 节奏90、时长15

	for dayOffset := 0; dayOffset < 2; dayOffset++ {
		day := testDay.AddDate(0, 0, dayOffset)
		plan, err := PlanDay(day, "09:00:00", "17:00:00", nil, activities, rng)
		if err != nil {
			t.Fatalf("PlanDay 失败: %v", err)
		}

		recurringMinutes, recurringCount, breakCount := 0, 0, 0
		for _, p := range plan.Placements {
			switch p.Kind {
			case PlacementRecurring:
				recurringCount++
				recurringMinutes += p.Minutes()
				if p.ActivityID != "a1" {
					t.Errorf("第%d天: 片段归属错误: %+v", dayOffset+1, p)
				}
			case PlacementBreak:
				breakCount++
			}
		}
		if recurringCount != 1 || recurringMinutes != 60 {
			t.Errorf("第%d天: 期望恰一条60分钟片段，实际 count=%d minutes=%d",
				dayOffset+1, recurringCount, recurringMinutes)
		}
		if breakCount == 0 {
			t.Errorf("第%d天: 日程中应包含休息条目", dayOffset+1)
		}
		if len(plan.UnplacedMinutes) != 0 {
			t.Errorf("第%d天: 不应有未安排分钟: %v", dayOffset+1, plan.UnplacedMinutes)
		}
	}
}

// 端到端场景：定点活动占满工作窗口 → 当日无活动片段
func TestPlanDay_FullDayPunctualBlocksEverything(t *testing.T) {
	activities := []model.RecurringActivity{
		recurring("a1", 2, testDay, testDay),
	}
	punctuals := []model.PunctualActivity{
		punctual(testDay, "09:00:00", "17:00:00"),
	}

	plan, err := PlanDay(testDay, "09:00:00", "17:00:00", punctuals, activities, &scriptedRand{seq: []int{0}})
	if err != nil {
		t.Fatalf("PlanDay 失败: %v", err)
	}

	for _, p := range plan.Placements {
		if p.Kind == PlacementRecurring {
			t.Errorf("窗口被占满时不应有活动片段: %+v", p)
		}
	}
	// 背包仍按完整窗口选中了活动，但槽位耗尽 → 全额欠账
	if plan.UnplacedMinutes["a1"] != 60 {
		t.Errorf("a1应欠60分钟，实际=%v", plan.UnplacedMinutes)
	}
}

// 固定随机序列下重复排程应产生完全一致的结果
func TestPlanDay_DeterministicUnderFixedRandomness(t *testing.T) {
	activities := []model.RecurringActivity{
		recurring("a1", 2, testDay, testDay),
		recurring("a2", 1, testDay, testDay),
	}
	punctuals := []model.PunctualActivity{
		punctual(testDay, "12:00:00", "13:00:00"),
	}

	run := func() []Placement {
		plan, err := PlanDay(testDay, "08:00:00", "18:00:00", punctuals, activities,
			&scriptedRand{seq: []int{1, 0, 0, 1}})
		if err != nil {
			t.Fatalf("PlanDay 失败: %v", err)
		}
		return plan.Placements
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("两次运行产出数量不同: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("第%d条产出不一致: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPlanDay_CompletedActivityStillChecksValidity(t *testing.T) {
	// 过期活动当日无效，不应出现在任何片段中
	activities := []model.RecurringActivity{
		recurring("past", 2, testDay.AddDate(0, 0, -9), testDay.AddDate(0, 0, -1)),
	}

	plan, err := PlanDay(testDay, "09:00:00", "17:00:00", nil, activities, &scriptedRand{seq: []int{0}})
	if err != nil {
		t.Fatalf("PlanDay 失败: %v", err)
	}
	for _, p := range plan.Placements {
		if p.Kind == PlacementRecurring {
			t.Errorf("当日无效活动不应被安排: %+v", p)
		}
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 3, 2, 15, 42, 7, 123, time.Local)
	d := DateOnly(ts)
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 || d.Nanosecond() != 0 {
		t.Errorf("DateOnly 应截断到零点，实际=%v", d)
	}
}
