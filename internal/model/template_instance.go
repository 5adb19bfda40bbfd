package model

import "time"

// TemplateInstance 模板实例：一次模板与数据的合并结果
type TemplateInstance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	RenderID       string    `json:"render_id" gorm:"size:64;uniqueIndex"` // UUID
	TemplateID     uint      `json:"template_id" gorm:"index;not null"`
	Data           string    `json:"data" gorm:"type:text"`
	Status         string    `json:"status" gorm:"size:20;default:pending;index"` // pending, rendered, error
	RenderedOutput string    `json:"rendered_output" gorm:"type:text"`
	ErrorKind      string    `json:"error_kind" gorm:"size:50"`
	ErrorMsg       string    `json:"error_msg" gorm:"size:2000"`
	ErrorNodeID    string    `json:"error_node_id" gorm:"size:100"`
	ErrorProperty  string    `json:"error_property" gorm:"size:100"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName 指定表名
func (TemplateInstance) TableName() string {
	return "template_instances"
}
