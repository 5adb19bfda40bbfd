package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// InstanceStatus 模板实例的所有可能状态
type InstanceStatus string

const (
	InstanceStatusPending  InstanceStatus = "pending"  // 已创建，等待解析
	InstanceStatusRendered InstanceStatus = "rendered" // 解析成功（终态）
	InstanceStatusError    InstanceStatus = "error"    // 解析失败（终态）
)

// InstanceTransition 定义实例状态迁移
type InstanceTransition struct {
	From InstanceStatus
	To   InstanceStatus
}

// InstanceStateMachine 实例状态机。
// 只有 pending -> rendered 与 pending -> error 两条迁移，终态不可回退；
// 需要重新渲染时应创建新实例。
type InstanceStateMachine struct {
	allowedTransitions map[InstanceTransition]bool
}

// NewInstanceStateMachine 创建实例状态机
func NewInstanceStateMachine() *InstanceStateMachine {
	sm := &InstanceStateMachine{
		allowedTransitions: make(map[InstanceTransition]bool),
	}

	transitions := []InstanceTransition{
		{InstanceStatusPending, InstanceStatusRendered},
		{InstanceStatusPending, InstanceStatusError},
	}
	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *InstanceStateMachine) CanTransition(from, to InstanceStatus) bool {
	if from == to {
		return false
	}
	return sm.allowedTransitions[InstanceTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *InstanceStateMachine) ValidateTransition(from, to InstanceStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *InstanceStateMachine) Transition(from, to InstanceStatus, instanceID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("实例状态迁移被拒绝: instanceID=%d, %s -> %s, error=%v",
			instanceID, from, to, err)
		return err
	}

	klog.V(6).Infof("实例状态迁移成功: instanceID=%d, %s -> %s", instanceID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid instance state transition: %s -> %s", e.From, e.To)
}

// IsTerminal 判断状态是否为终止态
func IsTerminal(status InstanceStatus) bool {
	return status == InstanceStatusRendered || status == InstanceStatusError
}
