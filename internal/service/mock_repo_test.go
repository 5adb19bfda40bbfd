package service

import (
	"sync"

	"github.com/weibaohui/pagecraft/internal/model"
	"github.com/weibaohui/pagecraft/internal/repository"
	"github.com/weibaohui/pagecraft/internal/service/statemachine"
)

type mockTemplateRepo struct {
	ListFunc    func() ([]model.Template, error)
	GetByIDFunc func(id uint) (*model.Template, error)
	CreateFunc  func(template *model.Template) error
	UpdateFunc  func(template *model.Template) error
	DeleteFunc  func(id uint) error
}

func (m *mockTemplateRepo) List() ([]model.Template, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *mockTemplateRepo) GetByID(id uint) (*model.Template, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTemplateRepo) Create(template *model.Template) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(template)
	}
	return nil
}

func (m *mockTemplateRepo) Update(template *model.Template) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(template)
	}
	return nil
}

func (m *mockTemplateRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockInstanceRepo 内存实现，记录每次保存时的快照；可并发使用
type mockInstanceRepo struct {
	mu        sync.Mutex
	instances map[uint]*model.TemplateInstance
	nextID    uint
	saved     []model.TemplateInstance

	CreateFunc func(instance *model.TemplateInstance) error
	SaveFunc   func(instance *model.TemplateInstance) error
}

func newMockInstanceRepo() *mockInstanceRepo {
	return &mockInstanceRepo{instances: make(map[uint]*model.TemplateInstance)}
}

func (m *mockInstanceRepo) Create(instance *model.TemplateInstance) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(instance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	instance.ID = m.nextID
	copied := *instance
	m.instances[instance.ID] = &copied
	return nil
}

func (m *mockInstanceRepo) GetByID(id uint) (*model.TemplateInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	instance, ok := m.instances[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *instance
	return &copied, nil
}

func (m *mockInstanceRepo) ListByTemplate(templateID uint, limit int) ([]model.TemplateInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.TemplateInstance
	for id := m.nextID; id > 0; id-- {
		instance, ok := m.instances[id]
		if !ok || instance.TemplateID != templateID {
			continue
		}
		result = append(result, *instance)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *mockInstanceRepo) Save(instance *model.TemplateInstance) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(instance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *instance
	m.instances[instance.ID] = &copied
	m.saved = append(m.saved, copied)
	return nil
}

func (m *mockInstanceRepo) DeleteByTemplateID(templateID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, instance := range m.instances {
		if instance.TemplateID == templateID {
			delete(m.instances, id)
		}
	}
	return nil
}

func (m *mockInstanceRepo) CountByStatus() (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := map[string]int64{
		string(statemachine.InstanceStatusPending):  0,
		string(statemachine.InstanceStatusRendered): 0,
		string(statemachine.InstanceStatusError):    0,
	}
	for _, instance := range m.instances {
		stats[instance.Status]++
	}
	return stats, nil
}
