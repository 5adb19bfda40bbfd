package component

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrPropertyConstraint   = errors.New("property constraint violation")
	ErrDuplicateType        = errors.New("duplicate component type")
)

// UnknownTypeError 组件类型未注册
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown component type %q", e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownComponentType
}

// ConstraintViolationError 属性值不在声明域内且策略为 reject
type ConstraintViolationError struct {
	Type     string
	Property string
	Value    any
	Reason   string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("property %s.%s: value %v %s", e.Type, e.Property, e.Value, e.Reason)
}

func (e *ConstraintViolationError) Unwrap() error {
	return ErrPropertyConstraint
}
