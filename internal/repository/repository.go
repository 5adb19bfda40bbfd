package repository

import (
	"errors"

	"github.com/weibaohui/pagecraft/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type TemplateRepository interface {
	List() ([]model.Template, error)
	GetByID(id uint) (*model.Template, error)
	Create(template *model.Template) error
	Update(template *model.Template) error
	Delete(id uint) error
}

type InstanceRepository interface {
	Create(instance *model.TemplateInstance) error
	GetByID(id uint) (*model.TemplateInstance, error)
	ListByTemplate(templateID uint, limit int) ([]model.TemplateInstance, error)
	Save(instance *model.TemplateInstance) error
	DeleteByTemplateID(templateID uint) error
	CountByStatus() (map[string]int64, error)
}
