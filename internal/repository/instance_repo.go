package repository

import (
	"errors"

	"github.com/weibaohui/pagecraft/internal/model"
	"github.com/weibaohui/pagecraft/internal/service/statemachine"
	"gorm.io/gorm"
)

type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository 创建实例 Repository
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

// Create 创建实例记录
func (r *instanceRepository) Create(instance *model.TemplateInstance) error {
	return r.db.Create(instance).Error
}

// GetByID 根据ID获取实例
func (r *instanceRepository) GetByID(id uint) (*model.TemplateInstance, error) {
	var instance model.TemplateInstance
	result := r.db.First(&instance, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &instance, nil
}

// ListByTemplate 获取模板下的实例，最新的在前；limit<=0 表示不限制
func (r *instanceRepository) ListByTemplate(templateID uint, limit int) ([]model.TemplateInstance, error) {
	var instances []model.TemplateInstance
	query := r.db.Where("template_id = ?", templateID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&instances)
	return instances, result.Error
}

// Save 保存实例
func (r *instanceRepository) Save(instance *model.TemplateInstance) error {
	return r.db.Save(instance).Error
}

// DeleteByTemplateID 删除模板下的全部实例
func (r *instanceRepository) DeleteByTemplateID(templateID uint) error {
	return r.db.Where("template_id = ?", templateID).Delete(&model.TemplateInstance{}).Error
}

// CountByStatus 按状态统计实例数量
func (r *instanceRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&model.TemplateInstance{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := map[string]int64{
		string(statemachine.InstanceStatusPending):  0,
		string(statemachine.InstanceStatusRendered): 0,
		string(statemachine.InstanceStatusError):    0,
	}
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}
