package repository

import (
	"errors"

	"github.com/weibaohui/pagecraft/internal/model"
	"gorm.io/gorm"
)

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// List 获取所有模板列表（按更新时间倒序）
func (r *templateRepository) List() ([]model.Template, error) {
	var templates []model.Template
	result := r.db.Order("updated_at DESC, id DESC").Find(&templates)
	return templates, result.Error
}

// GetByID 根据ID获取模板
func (r *templateRepository) GetByID(id uint) (*model.Template, error) {
	var template model.Template
	result := r.db.First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Create 创建模板
func (r *templateRepository) Create(template *model.Template) error {
	return r.db.Create(template).Error
}

// Update 更新模板
func (r *templateRepository) Update(template *model.Template) error {
	return r.db.Save(template).Error
}

// Delete 删除模板及其全部实例
func (r *templateRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := NewInstanceRepository(tx).DeleteByTemplateID(id); err != nil {
			return err
		}
		result := tx.Delete(&model.Template{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
