package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/redis/go-redis/v9"
)

const summaryCacheTTL = 60 * time.Second

// DashboardService 当日生产汇总，redis缓存减轻列表页轮询压力
type DashboardService struct {
	repo *repository.ProductionRecordRepository
	rdb  *redis.Client
}

func NewDashboardService(repo *repository.ProductionRecordRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{repo: repo, rdb: rdb}
}

// KindSummary 单一记录类型的汇总
type KindSummary struct {
	Records       int     `json:"records"`
	TotalHours    float64 `json:"total_hours"`
	TargetQty     float64 `json:"target_qty"`
	ProducedQty   float64 `json:"produced_qty"`
	AvgEfficiency float64 `json:"avg_efficiency"`
	Defects       int     `json:"defects"`
}

// DailySummary 某天各类型的汇总
type DailySummary struct {
	Date        string                 `json:"date"`
	Kinds       map[string]KindSummary `json:"kinds"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Summary 取某天汇总，优先读缓存。
func (s *DashboardService) Summary(ctx context.Context, date string) (*DailySummary, error) {
	cacheKey := "texhub:dashboard:" + date

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached DailySummary
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list records for %s: %w", date, err)
	}

	summary := summarize(date, records)

	if s.rdb != nil {
		if raw, err := json.Marshal(summary); err == nil {
			s.rdb.Set(ctx, cacheKey, raw, summaryCacheTTL)
		}
	}

	return summary, nil
}

// summarize 纯聚合，便于测试。
func summarize(date string, records []entity.ProductionRecord) *DailySummary {
	kinds := map[string]KindSummary{
		entity.KindKnitting: {},
		entity.KindDyeing:   {},
		entity.KindGarments: {},
	}
	effSum := map[string]float64{}
	effCount := map[string]int{}

	for _, rec := range records {
		ks := kinds[rec.Kind]
		ks.Records++
		ks.TotalHours += rec.TotalHours

		switch rec.Kind {
		case entity.KindKnitting:
			if k := rec.KnittingData; k != nil {
				ks.TargetQty += k.TargetProduction
				ks.ProducedQty += k.ActualProduction
				ks.Defects += k.Defects.Holes + k.Defects.DropStitches + k.Defects.YarnBreaks + k.Defects.Other
				if k.TargetProduction > 0 {
					effSum[rec.Kind] += k.Efficiency
					effCount[rec.Kind]++
				}
			}
		case entity.KindDyeing:
			if d := rec.DyeingData; d != nil {
				ks.ProducedQty += d.BatchWeight
			}
		case entity.KindGarments:
			if g := rec.GarmentsData; g != nil {
				ks.TargetQty += g.TargetQuantity
				ks.ProducedQty += g.CompletedQuantity
				ks.Defects += g.Defects.StitchingDefects + g.Defects.MeasurementDefects + g.Defects.FabricDefects + g.Defects.Other
				if g.TargetQuantity > 0 {
					effSum[rec.Kind] += g.Efficiency
					effCount[rec.Kind]++
				}
			}
		}

		kinds[rec.Kind] = ks
	}

	for kind, ks := range kinds {
		if n := effCount[kind]; n > 0 {
			ks.AvgEfficiency = effSum[kind] / float64(n)
			kinds[kind] = ks
		}
	}

	return &DailySummary{
		Date:        date,
		Kinds:       kinds,
		GeneratedAt: time.Now(),
	}
}
