package scheduler

import "testing"

// scriptedRand 按脚本返回的确定性随机源
type scriptedRand struct {
	seq []int
	i   int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func TestInsertBreaks_Deterministic(t *testing.T) {
	// 固定抽取：节奏恒为90、时长恒为15
	rng := &scriptedRand{seq: []int{0}}
	free := []Interval{iv(t, "09:00:00", "17:00:00")} // 480 分钟

	slots := InsertBreaks(free, rng)

	// 预期：90工作+15休息 重复4轮（420分钟），余60分钟收尾
	// available(90) break(15) × 4 → 8 槽，加残余 available(60) → 9 槽
	if len(slots) != 9 {
		t.Fatalf("期望9个槽位，实际=%d: %v", len(slots), slots)
	}
	if slots[0].Kind != SlotAvailable || slots[0].Minutes() != 90 {
		t.Errorf("首槽应为90分钟空闲，实际=%v", slots[0])
	}
	if slots[1].Kind != SlotBreak || slots[1].BreakMinutes != 15 {
		t.Errorf("第二槽应为15分钟休息，实际=%v", slots[1])
	}
	last := slots[len(slots)-1]
	if last.Kind != SlotAvailable || last.Minutes() != 60 {
		t.Errorf("末槽应为60分钟残余空闲，实际=%v", last)
	}
}

func TestInsertBreaks_ShortResidualDropped(t *testing.T) {
	// 125分钟：90工作+20休息后剩15分钟（≤30），应被丢弃
	rng := &scriptedRand{seq: []int{0, 1}} // 节奏90、时长20
	free := []Interval{iv(t, "09:00:00", "11:05:00")}

	slots := InsertBreaks(free, rng)

	if len(slots) != 2 {
		t.Fatalf("期望2个槽位（空闲+休息），实际=%v", slots)
	}
	if slots[1].Kind != SlotBreak || slots[1].BreakMinutes != 20 {
		t.Errorf("第二槽应为20分钟休息，实际=%v", slots[1])
	}
}

func TestInsertBreaks_IntervalTooShortForBreak(t *testing.T) {
	// 60分钟放不下一轮 90+15，整段作为残余空闲输出
	rng := &scriptedRand{seq: []int{0}}
	free := []Interval{iv(t, "09:00:00", "10:00:00")}

	slots := InsertBreaks(free, rng)
	if len(slots) != 1 || slots[0].Kind != SlotAvailable || slots[0].Minutes() != 60 {
		t.Errorf("短区间应整段输出为空闲，实际=%v", slots)
	}
}

func TestInsertBreaks_TinyIntervalDropped(t *testing.T) {
	// 30分钟 ≤ 阈值，整段丢弃
	rng := &scriptedRand{seq: []int{0}}
	free := []Interval{iv(t, "09:00:00", "09:30:00")}

	if slots := InsertBreaks(free, rng); len(slots) != 0 {
		t.Errorf("≤30分钟的区间应被丢弃，实际=%v", slots)
	}
}

// 守恒性质：槽位总时长不超过输入区间长度；休息时长只能是15或20
func TestInsertBreaks_Conservation(t *testing.T) {
	seqs := [][]int{{0}, {1}, {0, 1}, {1, 0}, {1, 1, 0}, {0, 0, 1, 1}}
	free := []Interval{iv(t, "08:30:00", "18:45:00")}
	total := free[0].Minutes()

	for _, seq := range seqs {
		slots := InsertBreaks(free, &scriptedRand{seq: seq})

		sum := 0
		for _, s := range slots {
			sum += s.Minutes()
			if s.Start.Before(free[0].Start) || s.End.After(free[0].End) {
				t.Errorf("槽位 %v 超出输入区间", s)
			}
			if s.Kind == SlotBreak && s.BreakMinutes != 15 && s.BreakMinutes != 20 {
				t.Errorf("休息时长必须为15或20，实际=%d", s.BreakMinutes)
			}
			if s.Kind == SlotBreak && s.Minutes() != s.BreakMinutes {
				t.Errorf("休息槽区间长度 %d 与标称 %d 不一致", s.Minutes(), s.BreakMinutes)
			}
		}
		if sum > total {
			t.Errorf("序列%v: 槽位总长%d超过输入%d", seq, sum, total)
		}
	}
}

func TestInsertBreaks_RealRandSource(t *testing.T) {
	slots := InsertBreaks([]Interval{iv(t, "09:00:00", "17:00:00")}, NewRandSource())
	for _, s := range slots {
		if s.Kind != SlotAvailable && s.Kind != SlotBreak {
			t.Errorf("非法槽位类型: %q", s.Kind)
		}
	}
}
