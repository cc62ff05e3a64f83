package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/testutil"
	"github.com/google/uuid"
)

func newTestRecord(kind, date, machineNo string) *entity.ProductionRecord {
	now := time.Now()
	rec := &entity.ProductionRecord{
		ID:           uuid.New().String()[:32],
		Kind:         kind,
		Date:         date,
		Shift:        entity.ShiftA,
		Operator:     "Rahim",
		Supervisor:   "Karim",
		MachineNo:    machineNo,
		StartTime:    "08:00",
		EndTime:      "16:00",
		TotalHours:   8,
		QualityGrade: entity.GradeA,
		CreatedBy:    "test-user-001",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch kind {
	case entity.KindKnitting:
		rec.KnittingData = &entity.KnittingData{
			FabricType: "Single Jersey", YarnType: "Cotton 30/1",
			TargetProduction: 100, ActualProduction: 92, Efficiency: 92,
			Defects: entity.KnittingDefects{Holes: 2, DropStitches: 1},
		}
	case entity.KindDyeing:
		rec.DyeingData = &entity.DyeingData{
			FabricType: "Interlock", Color: "Navy", DyeType: "Reactive",
			BatchWeight: 250,
			QualityResults: entity.QualityResults{
				ColorMatch: entity.ResultGood, Fastness: entity.ResultGood, Uniformity: entity.ResultGood,
			},
		}
	case entity.KindGarments:
		rec.GarmentsData = &entity.GarmentsData{
			Style: "Polo", Size: "L", Color: "Black",
			TargetQuantity: 400, CompletedQuantity: 380, Efficiency: 95,
		}
	}
	return rec
}

func TestRecordCRUDRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProductionRecordRepository(db)
	ctx := context.Background()

	rec := newTestRecord(entity.KindKnitting, "2025-03-10", "KM-12")
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Operator != "Rahim" || got.TotalHours != 8 {
		t.Errorf("common fields lost: %+v", got)
	}
	if got.KnittingData == nil {
		t.Fatal("knitting payload did not survive the jsonb round trip")
	}
	if got.KnittingData.Efficiency != 92 || got.KnittingData.Defects.Holes != 2 {
		t.Errorf("payload fields lost: %+v", got.KnittingData)
	}
	if got.DyeingData != nil || got.GarmentsData != nil {
		t.Error("foreign payload columns must stay null")
	}

	got.Operator = "Salma"
	got.UpdatedAt = time.Now()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.FindByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if again.Operator != "Salma" {
		t.Errorf("operator = %q after update", again.Operator)
	}
}

func TestRecordSoftDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProductionRecordRepository(db)
	ctx := context.Background()

	rec := newTestRecord(entity.KindDyeing, "2025-03-10", "DM-01")
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID after delete: %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: %v, want ErrNotFound", err)
	}

	// The row itself is kept.
	var count int64
	db.Model(&entity.ProductionRecord{}).Where("id = ?", rec.ID).Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, soft delete must keep the row", count)
	}
}

func TestRecordListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProductionRecordRepository(db)
	ctx := context.Background()

	seed := []*entity.ProductionRecord{
		newTestRecord(entity.KindKnitting, "2025-03-10", "KM-12"),
		newTestRecord(entity.KindKnitting, "2025-03-11", "KM-13"),
		newTestRecord(entity.KindDyeing, "2025-03-10", "DM-01"),
	}
	for _, rec := range seed {
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	records, total, err := repo.List(ctx, RecordListParams{Kind: entity.KindKnitting})
	if err != nil {
		t.Fatalf("List by kind: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Errorf("kind filter: total=%d len=%d, want 2", total, len(records))
	}
	// Newest date first.
	if records[0].Date != "2025-03-11" {
		t.Errorf("order: first date = %s", records[0].Date)
	}

	_, total, err = repo.List(ctx, RecordListParams{DateFrom: "2025-03-11"})
	if err != nil {
		t.Fatalf("List by date: %v", err)
	}
	if total != 1 {
		t.Errorf("date filter total = %d, want 1", total)
	}

	_, total, err = repo.List(ctx, RecordListParams{Keyword: "km-1"})
	if err != nil {
		t.Fatalf("List by keyword: %v", err)
	}
	if total != 2 {
		t.Errorf("keyword filter total = %d, want 2 (case-insensitive machine match)", total)
	}

	_, total, err = repo.List(ctx, RecordListParams{Keyword: "rahim"})
	if err != nil {
		t.Fatalf("List by operator keyword: %v", err)
	}
	if total != 3 {
		t.Errorf("operator keyword total = %d, want 3", total)
	}
}

func TestRecordListPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProductionRecordRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rec := newTestRecord(entity.KindGarments, "2025-03-10", fmt.Sprintf("Line-%02d", i+1))
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	records, total, err := repo.List(ctx, RecordListParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(records) != 2 {
		t.Errorf("page 2 len = %d, want 2", len(records))
	}

	records, _, err = repo.List(ctx, RecordListParams{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("List last page: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("page 3 len = %d, want 1", len(records))
	}
}

func TestListByDateAndRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewProductionRecordRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2025-03-09", "2025-03-10", "2025-03-11"} {
		rec := newTestRecord(entity.KindKnitting, date, "KM-12")
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	byDate, err := repo.ListByDate(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(byDate) != 1 {
		t.Errorf("ListByDate len = %d, want 1", len(byDate))
	}

	ranged, err := repo.ListByDateRange(ctx, "", "2025-03-10", "2025-03-11")
	if err != nil {
		t.Fatalf("ListByDateRange: %v", err)
	}
	if len(ranged) != 2 {
		t.Errorf("range len = %d, want 2", len(ranged))
	}
	// Oldest first for export.
	if len(ranged) == 2 && ranged[0].Date != "2025-03-10" {
		t.Errorf("range order: first date = %s", ranged[0].Date)
	}

	ranged, err = repo.ListByDateRange(ctx, entity.KindDyeing, "", "")
	if err != nil {
		t.Fatalf("ListByDateRange by kind: %v", err)
	}
	if len(ranged) != 0 {
		t.Errorf("dyeing range len = %d, want 0", len(ranged))
	}
}
