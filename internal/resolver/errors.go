package resolver

import (
	"errors"
	"fmt"
)

var ErrUnboundReference = errors.New("unbound reference")

// ErrorKind 解析失败类型
type ErrorKind string

const (
	KindInvalidTemplate     ErrorKind = "invalid_template"
	KindUnboundReference    ErrorKind = "unbound_reference"
	KindConstraintViolation ErrorKind = "constraint_violation"
	KindRenderFailed        ErrorKind = "render_failed"
)

// ResolutionError 单次解析的失败结果，NodeID/Property 定位出错位置
type ResolutionError struct {
	Kind     ErrorKind
	NodeID   string
	Property string
	Path     string
	Err      error
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case KindUnboundReference:
		return fmt.Sprintf("node %q property %q: data path %q is not bound", e.NodeID, e.Property, e.Path)
	case KindInvalidTemplate:
		return e.Err.Error()
	}
	if e.NodeID != "" {
		return fmt.Sprintf("node %q: %v", e.NodeID, e.Err)
	}
	return e.Err.Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
