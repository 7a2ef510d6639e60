package services

import (
	"testing"
	"time"

	"github.com/campuscore/erp-api/model"
)

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestByTypeKeepsFurthestValidTill(t *testing.T) {
	passes := []model.Pass{
		{ID: 1, PassType: model.PassTypeBus, ValidTill: day(10)},
		{ID: 2, PassType: model.PassTypeBus, ValidTill: day(20)},
		{ID: 3, PassType: model.PassTypeJainMess, ValidTill: day(15)},
		{ID: 4, PassType: model.PassTypeBus, ValidTill: day(5)},
	}

	got := LatestByType(passes)
	if len(got) != 2 {
		t.Fatalf("expected one pass per type, got %d", len(got))
	}

	byType := map[string]model.Pass{}
	for _, p := range got {
		if _, dup := byType[p.PassType]; dup {
			t.Fatalf("duplicate pass type %q in result", p.PassType)
		}
		byType[p.PassType] = p
	}

	if byType[model.PassTypeBus].ID != 2 {
		t.Errorf("bus pass = %d, want 2 (furthest valid_till)", byType[model.PassTypeBus].ID)
	}
	if byType[model.PassTypeJainMess].ID != 3 {
		t.Errorf("mess pass = %d, want 3", byType[model.PassTypeJainMess].ID)
	}

	// Kept valid_till dominates every discarded row of the same type.
	for _, p := range passes {
		if p.ValidTill.After(byType[p.PassType].ValidTill) {
			t.Errorf("discarded pass %d outlives the kept one", p.ID)
		}
	}
}

func TestLatestByTypeTieLastWriteWins(t *testing.T) {
	passes := []model.Pass{
		{ID: 1, PassType: model.PassTypeBus, ValidTill: day(10)},
		{ID: 2, PassType: model.PassTypeBus, ValidTill: day(10)},
	}

	got := LatestByType(passes)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("equal valid_till must keep the later element, got %v", got)
	}
}

func TestLatestByTypeEmptyInput(t *testing.T) {
	if got := LatestByType(nil); len(got) != 0 {
		t.Fatalf("empty input must yield empty output, got %v", got)
	}
}
