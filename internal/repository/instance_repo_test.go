package repository

import (
	"errors"
	"testing"

	"github.com/weibaohui/pagecraft/internal/model"
	"github.com/weibaohui/pagecraft/internal/service/statemachine"
)

func TestInstanceRepositoryListAndStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewInstanceRepository(db)

	rows := []model.TemplateInstance{
		{TemplateID: 1, RenderID: "a", Status: string(statemachine.InstanceStatusRendered)},
		{TemplateID: 1, RenderID: "b", Status: string(statemachine.InstanceStatusError), ErrorKind: "unbound_reference"},
		{TemplateID: 1, RenderID: "c", Status: string(statemachine.InstanceStatusRendered)},
		{TemplateID: 2, RenderID: "d", Status: string(statemachine.InstanceStatusPending)},
	}
	for i := range rows {
		if err := repo.Create(&rows[i]); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	got, err := repo.ListByTemplate(1, 2)
	if err != nil {
		t.Fatalf("ListByTemplate error: %v", err)
	}
	if len(got) != 2 || got[0].RenderID != "c" || got[1].RenderID != "b" {
		t.Fatalf("unexpected instances: %+v", got)
	}

	stats, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if stats[string(statemachine.InstanceStatusRendered)] != 2 || stats[string(statemachine.InstanceStatusError)] != 1 || stats[string(statemachine.InstanceStatusPending)] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	if err := repo.DeleteByTemplateID(1); err != nil {
		t.Fatalf("DeleteByTemplateID error: %v", err)
	}
	stats, err = repo.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if stats[string(statemachine.InstanceStatusRendered)] != 0 {
		t.Fatalf("expected rendered count 0, got %d", stats[string(statemachine.InstanceStatusRendered)])
	}
}

func TestInstanceRepositorySaveUpdatesStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewInstanceRepository(db)

	inst := &model.TemplateInstance{TemplateID: 3, RenderID: "x", Status: string(statemachine.InstanceStatusPending)}
	if err := repo.Create(inst); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	inst.Status = string(statemachine.InstanceStatusRendered)
	inst.RenderedOutput = `{"roots":[]}`
	if err := repo.Save(inst); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := repo.GetByID(inst.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Status != string(statemachine.InstanceStatusRendered) || got.RenderedOutput != `{"roots":[]}` {
		t.Fatalf("unexpected instance: %+v", got)
	}
	if _, err := repo.GetByID(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
