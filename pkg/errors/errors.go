package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrScheduleInProgress 同一用户的排程正在进行中，拒绝并发重排
var ErrScheduleInProgress = errors.New("排程正在生成中，请稍后再试")
