package service

import (
	"testing"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
)

func TestSummarizeEmptyDay(t *testing.T) {
	sum := summarize("2025-03-10", nil)

	if sum.Date != "2025-03-10" {
		t.Errorf("date = %q", sum.Date)
	}
	if len(sum.Kinds) != 3 {
		t.Fatalf("kinds = %v, want zeroed entries for all three", sum.Kinds)
	}
	for kind, ks := range sum.Kinds {
		if ks != (KindSummary{}) {
			t.Errorf("%s summary not zeroed: %+v", kind, ks)
		}
	}
}

func TestSummarizeAggregation(t *testing.T) {
	records := []entity.ProductionRecord{
		{
			Kind: entity.KindKnitting, TotalHours: 8,
			KnittingData: &entity.KnittingData{
				TargetProduction: 100, ActualProduction: 92, Efficiency: 92,
				Defects: entity.KnittingDefects{Holes: 2, YarnBreaks: 1},
			},
		},
		{
			Kind: entity.KindKnitting, TotalHours: 7.5,
			KnittingData: &entity.KnittingData{
				TargetProduction: 120, ActualProduction: 96, Efficiency: 80,
				Defects: entity.KnittingDefects{DropStitches: 3},
			},
		},
		{
			Kind: entity.KindDyeing, TotalHours: 6,
			DyeingData: &entity.DyeingData{BatchWeight: 250},
		},
		{
			Kind: entity.KindGarments, TotalHours: 8,
			GarmentsData: &entity.GarmentsData{
				TargetQuantity: 400, CompletedQuantity: 380, Efficiency: 95,
				Defects: entity.GarmentDefects{StitchingDefects: 4, Other: 1},
			},
		},
	}

	sum := summarize("2025-03-10", records)

	k := sum.Kinds[entity.KindKnitting]
	if k.Records != 2 || k.TotalHours != 15.5 {
		t.Errorf("knitting counts: %+v", k)
	}
	if k.TargetQty != 220 || k.ProducedQty != 188 {
		t.Errorf("knitting quantities: %+v", k)
	}
	if k.AvgEfficiency != 86 {
		t.Errorf("knitting avg efficiency = %v, want 86", k.AvgEfficiency)
	}
	if k.Defects != 6 {
		t.Errorf("knitting defects = %d, want 6", k.Defects)
	}

	d := sum.Kinds[entity.KindDyeing]
	if d.Records != 1 || d.ProducedQty != 250 || d.AvgEfficiency != 0 {
		t.Errorf("dyeing summary: %+v", d)
	}

	g := sum.Kinds[entity.KindGarments]
	if g.Records != 1 || g.ProducedQty != 380 || g.AvgEfficiency != 95 || g.Defects != 5 {
		t.Errorf("garments summary: %+v", g)
	}
}

func TestSummarizeSkipsZeroTargetEfficiency(t *testing.T) {
	records := []entity.ProductionRecord{
		{
			Kind:         entity.KindKnitting,
			KnittingData: &entity.KnittingData{TargetProduction: 100, Efficiency: 90},
		},
		{
			Kind:         entity.KindKnitting,
			KnittingData: &entity.KnittingData{TargetProduction: 0, Efficiency: 40},
		},
	}

	sum := summarize("2025-03-11", records)
	if got := sum.Kinds[entity.KindKnitting].AvgEfficiency; got != 90 {
		t.Errorf("avg efficiency = %v, want 90 (zero-target record excluded)", got)
	}
}

func TestSummarizeNilPayload(t *testing.T) {
	records := []entity.ProductionRecord{
		{Kind: entity.KindDyeing, TotalHours: 4},
	}
	sum := summarize("2025-03-12", records)
	d := sum.Kinds[entity.KindDyeing]
	if d.Records != 1 || d.TotalHours != 4 || d.ProducedQty != 0 {
		t.Errorf("dyeing summary with nil payload: %+v", d)
	}
}
