package model

import "time"

// Template 模板表，组件树以 JSON 文档存储
type Template struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null;default:''"`
	Description string    `json:"description" gorm:"size:500"`
	Document    string    `json:"document" gorm:"type:text;not null"` // arena 形式的组件树
	NodeCount   int       `json:"node_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}
