package service

import "errors"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInstanceNotFound = errors.New("instance not found")
	// ErrInvalidDocument 模板文档不是合法 JSON 或结构无法解码
	ErrInvalidDocument = errors.New("invalid template document")
	// ErrInvalidData 渲染数据不是合法 JSON
	ErrInvalidData = errors.New("invalid render data")
)

const timeLayout = "2006-01-02T15:04:05Z"
