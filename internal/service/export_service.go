package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService 导出生产记录为Excel报表
type ExportService struct {
	repo *repository.ProductionRecordRepository
}

func NewExportService(repo *repository.ProductionRecordRepository) *ExportService {
	return &ExportService{repo: repo}
}

var knittingExportHeaders = []string{
	"Date", "Shift", "Machine", "Operator", "Supervisor", "Start", "End", "Hours",
	"Fabric Type", "Yarn Type", "Yarn Lot", "Gauge", "GSM", "Width", "RPM",
	"Target (kg)", "Actual (kg)", "Efficiency %", "Needle Breaks",
	"Holes", "Drop Stitches", "Yarn Breaks", "Other Defects", "Grade", "Notes",
}

var dyeingExportHeaders = []string{
	"Date", "Shift", "Machine", "Operator", "Supervisor", "Start", "End", "Hours",
	"Fabric Type", "Color", "Dye Type", "Batch (kg)", "Liquor Ratio", "Temp (°C)",
	"pH", "Process (min)", "Dyes (kg)", "Salt (kg)", "Soda (kg)", "Auxiliaries (kg)",
	"Color Match", "Fastness", "Uniformity", "Water (L)", "Energy (kWh)",
	"Waste (kg)", "Grade", "Notes",
}

var garmentsExportHeaders = []string{
	"Date", "Shift", "Line", "Operator", "Supervisor", "Start", "End", "Hours",
	"Style", "Size", "Color", "Target (pcs)", "Completed (pcs)", "Efficiency %",
	"Rework", "Stitching", "Measurement", "Fabric", "Other Defects",
	"Cutting", "Sewing", "Finishing", "Packing", "Grade", "Notes",
}

// Export 生成日期区间内记录的xlsx工作簿，每种记录类型一个sheet。
func (s *ExportService) Export(ctx context.Context, kind, dateFrom, dateTo string) (*excelize.File, string, error) {
	records, err := s.repo.ListByDateRange(ctx, kind, dateFrom, dateTo)
	if err != nil {
		return nil, "", fmt.Errorf("list records: %w", err)
	}

	f, err := buildWorkbook(records)
	if err != nil {
		return nil, "", err
	}

	name := fmt.Sprintf("production-records-%s.xlsx", time.Now().Format("20060102-150405"))
	return f, name, nil
}

// buildWorkbook 纯函数，便于测试：记录切片 → 工作簿。
func buildWorkbook(records []entity.ProductionRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name    string
		kind    string
		headers []string
		row     func(entity.ProductionRecord) []interface{}
	}{
		{"Knitting", entity.KindKnitting, knittingExportHeaders, knittingRow},
		{"Dyeing", entity.KindDyeing, dyeingExportHeaders, dyeingRow},
		{"Garments", entity.KindGarments, garmentsExportHeaders, garmentsRow},
	}

	for i, sh := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", sh.name)
		} else {
			f.NewSheet(sh.name)
		}

		for col, h := range sh.headers {
			name, _ := excelize.ColumnNumberToName(col + 1)
			cell := name + "1"
			f.SetCellValue(sh.name, cell, h)
			f.SetCellStyle(sh.name, cell, cell, headerStyle)
		}

		row := 2
		for _, rec := range records {
			if rec.Kind != sh.kind {
				continue
			}
			for col, v := range sh.row(rec) {
				name, _ := excelize.ColumnNumberToName(col + 1)
				f.SetCellValue(sh.name, fmt.Sprintf("%s%d", name, row), v)
			}
			row++
		}
	}

	return f, nil
}

func knittingRow(rec entity.ProductionRecord) []interface{} {
	k := rec.KnittingData
	if k == nil {
		k = &entity.KnittingData{}
	}
	return []interface{}{
		rec.Date, rec.Shift, rec.MachineNo, rec.Operator, rec.Supervisor,
		rec.StartTime, rec.EndTime, rec.TotalHours,
		k.FabricType, k.YarnType, k.YarnLot, k.Gauge, k.GSM, k.Width, k.RPM,
		k.TargetProduction, k.ActualProduction, k.Efficiency, k.NeedleBreaks,
		k.Defects.Holes, k.Defects.DropStitches, k.Defects.YarnBreaks, k.Defects.Other,
		rec.QualityGrade, rec.Notes,
	}
}

func dyeingRow(rec entity.ProductionRecord) []interface{} {
	d := rec.DyeingData
	if d == nil {
		d = &entity.DyeingData{}
	}
	return []interface{}{
		rec.Date, rec.Shift, rec.MachineNo, rec.Operator, rec.Supervisor,
		rec.StartTime, rec.EndTime, rec.TotalHours,
		d.FabricType, d.Color, d.DyeType, d.BatchWeight, d.LiquorRatio,
		d.Temperature, d.PH, d.ProcessTime,
		d.ChemicalConsumption.Dyes, d.ChemicalConsumption.Salt,
		d.ChemicalConsumption.Soda, d.ChemicalConsumption.Auxiliaries,
		d.QualityResults.ColorMatch, d.QualityResults.Fastness, d.QualityResults.Uniformity,
		d.WaterConsumption, d.EnergyConsumption, d.WasteGenerated,
		rec.QualityGrade, rec.Notes,
	}
}

func garmentsRow(rec entity.ProductionRecord) []interface{} {
	g := rec.GarmentsData
	if g == nil {
		g = &entity.GarmentsData{}
	}
	return []interface{}{
		rec.Date, rec.Shift, rec.MachineNo, rec.Operator, rec.Supervisor,
		rec.StartTime, rec.EndTime, rec.TotalHours,
		g.Style, g.Size, g.Color, g.TargetQuantity, g.CompletedQuantity, g.Efficiency,
		g.Rework, g.Defects.StitchingDefects, g.Defects.MeasurementDefects,
		g.Defects.FabricDefects, g.Defects.Other,
		g.Operations.Cutting, g.Operations.Sewing, g.Operations.Finishing, g.Operations.Packing,
		rec.QualityGrade, rec.Notes,
	}
}
