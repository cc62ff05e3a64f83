// Package draft 实现生产记录录入引擎：持有一条在编辑中的记录，
// 按字段应用修改并重算派生字段(total_hours/efficiency)，提交前做
// 必填校验。引擎本身不做持久化，通过 Finalize 把合法记录交给上层。
package draft

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
)

// ValidationError 校验失败，携带 字段→提示 映射。录入引擎唯一的错误类型。
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// Editor 一条草稿记录的编辑会话。非并发安全，一个会话只被一个调用方持有。
type Editor struct {
	rec    entity.ProductionRecord
	errors map[string]string
}

// New 按类型创建空白草稿：必填字段为空、计数器归零、
// 染色质量结果取中性档 good。
func New(kind string) (*Editor, error) {
	e := &Editor{
		rec:    entity.ProductionRecord{Kind: kind},
		errors: make(map[string]string),
	}
	switch kind {
	case entity.KindKnitting:
		e.rec.KnittingData = &entity.KnittingData{}
	case entity.KindDyeing:
		e.rec.DyeingData = &entity.DyeingData{
			QualityResults: entity.QualityResults{
				ColorMatch: entity.ResultGood,
				Fastness:   entity.ResultGood,
				Uniformity: entity.ResultGood,
			},
		}
	case entity.KindGarments:
		e.rec.GarmentsData = &entity.GarmentsData{}
	default:
		return nil, fmt.Errorf("unknown record kind: %q", kind)
	}
	return e, nil
}

// Edit 基于已有记录创建草稿（编辑流程），类型取自记录本身。
// 缺失的载荷会按空白模板补齐。
func Edit(rec entity.ProductionRecord) (*Editor, error) {
	e, err := New(rec.Kind)
	if err != nil {
		return nil, err
	}
	blank := e.rec
	e.rec = rec
	switch rec.Kind {
	case entity.KindKnitting:
		if rec.KnittingData == nil {
			e.rec.KnittingData = blank.KnittingData
		}
	case entity.KindDyeing:
		if rec.DyeingData == nil {
			e.rec.DyeingData = blank.DyeingData
		}
	case entity.KindGarments:
		if rec.GarmentsData == nil {
			e.rec.GarmentsData = blank.GarmentsData
		}
	}
	return e, nil
}

// Record 当前草稿快照。
func (e *Editor) Record() entity.ProductionRecord {
	return e.rec
}

// Errors 上次提交失败后遗留的字段错误快照。
func (e *Editor) Errors() map[string]string {
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Validate 校验当前草稿，返回 字段→提示 映射。不修改草稿及已存错误。
func (e *Editor) Validate() (map[string]string, bool) {
	errs := make(map[string]string)

	requireText := func(field, label, value string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = label + " is required"
		}
	}

	requireText("date", "Date", e.rec.Date)
	requireText("shift", "Shift", e.rec.Shift)
	requireText("operator", "Operator", e.rec.Operator)
	requireText("supervisor", "Supervisor", e.rec.Supervisor)
	requireText("machineNo", "Machine no", e.rec.MachineNo)
	requireText("startTime", "Start time", e.rec.StartTime)
	requireText("endTime", "End time", e.rec.EndTime)
	requireText("qualityGrade", "Quality grade", e.rec.QualityGrade)

	switch e.rec.Kind {
	case entity.KindKnitting:
		k := e.rec.KnittingData
		requireText("fabricType", "Fabric type", k.FabricType)
		requireText("yarnType", "Yarn type", k.YarnType)
		if k.TargetProduction <= 0 {
			errs["targetProduction"] = "Target production must be greater than 0"
		}
		if k.ActualProduction < 0 {
			errs["actualProduction"] = "Actual production cannot be negative"
		}
	case entity.KindDyeing:
		d := e.rec.DyeingData
		requireText("fabricType", "Fabric type", d.FabricType)
		requireText("color", "Color", d.Color)
		requireText("dyeType", "Dye type", d.DyeType)
		if d.BatchWeight <= 0 {
			errs["batchWeight"] = "Batch weight must be greater than 0"
		}
	case entity.KindGarments:
		g := e.rec.GarmentsData
		requireText("style", "Style", g.Style)
		requireText("size", "Size", g.Size)
		requireText("color", "Color", g.Color)
		if g.TargetQuantity <= 0 {
			errs["targetQuantity"] = "Target quantity must be greater than 0"
		}
		if g.CompletedQuantity < 0 {
			errs["completedQuantity"] = "Completed quantity cannot be negative"
		}
	}

	return errs, len(errs) == 0
}

// Finalize 校验并取出记录。失败时把字段错误存回会话并返回
// *ValidationError；成功时返回记录值，ID与时间戳由调用方补齐。
func (e *Editor) Finalize() (entity.ProductionRecord, error) {
	errs, ok := e.Validate()
	if !ok {
		e.errors = errs
		return entity.ProductionRecord{}, &ValidationError{Fields: errs}
	}
	return e.rec, nil
}

// clear 字段被编辑后清掉该字段遗留的错误，重新校验推迟到下次提交。
func (e *Editor) clear(field string) {
	delete(e.errors, field)
}

// ---- 通用字段 ----

func (e *Editor) SetDate(v string) {
	e.rec.Date = v
	e.clear("date")
}

func (e *Editor) SetShift(v string) {
	e.rec.Shift = v
	e.clear("shift")
}

func (e *Editor) SetOperator(v string) {
	e.rec.Operator = v
	e.clear("operator")
}

func (e *Editor) SetSupervisor(v string) {
	e.rec.Supervisor = v
	e.clear("supervisor")
}

func (e *Editor) SetMachineNo(v string) {
	e.rec.MachineNo = v
	e.clear("machineNo")
}

func (e *Editor) SetStartTime(v string) {
	e.rec.StartTime = v
	e.clear("startTime")
	e.recomputeHours()
}

func (e *Editor) SetEndTime(v string) {
	e.rec.EndTime = v
	e.clear("endTime")
	e.recomputeHours()
}

func (e *Editor) SetQualityGrade(v string) {
	e.rec.QualityGrade = v
	e.clear("qualityGrade")
}

func (e *Editor) SetNotes(v string) {
	e.rec.Notes = v
	e.clear("notes")
}

// ---- 织造字段 ----

// knitting 结构化更新：复制载荷后修改，不动旧值。类型不匹配时为空操作。
func (e *Editor) knitting(mut func(*entity.KnittingData)) {
	if e.rec.KnittingData == nil {
		return
	}
	data := *e.rec.KnittingData
	mut(&data)
	e.rec.KnittingData = &data
}

func (e *Editor) SetYarnType(v string) {
	e.knitting(func(k *entity.KnittingData) { k.YarnType = v })
	e.clear("yarnType")
}

func (e *Editor) SetYarnLot(v string) {
	e.knitting(func(k *entity.KnittingData) { k.YarnLot = v })
	e.clear("yarnLot")
}

func (e *Editor) SetGauge(v float64) {
	e.knitting(func(k *entity.KnittingData) { k.Gauge = v })
	e.clear("gauge")
}

func (e *Editor) SetGSM(v float64) {
	e.knitting(func(k *entity.KnittingData) { k.GSM = v })
	e.clear("gsm")
}

func (e *Editor) SetWidth(v float64) {
	e.knitting(func(k *entity.KnittingData) { k.Width = v })
	e.clear("width")
}

func (e *Editor) SetRPM(v float64) {
	e.knitting(func(k *entity.KnittingData) { k.RPM = v })
	e.clear("rpm")
}

func (e *Editor) SetNeedleBreaks(v int) {
	e.knitting(func(k *entity.KnittingData) { k.NeedleBreaks = v })
	e.clear("needleBreaks")
}

func (e *Editor) SetTargetProduction(v float64) {
	e.knitting(func(k *entity.KnittingData) {
		k.TargetProduction = v
		recomputeEfficiency(&k.Efficiency, k.ActualProduction, k.TargetProduction)
	})
	e.clear("targetProduction")
}

func (e *Editor) SetActualProduction(v float64) {
	e.knitting(func(k *entity.KnittingData) {
		k.ActualProduction = v
		recomputeEfficiency(&k.Efficiency, k.ActualProduction, k.TargetProduction)
	})
	e.clear("actualProduction")
}

func (e *Editor) SetKnittingDefects(v entity.KnittingDefects) {
	e.knitting(func(k *entity.KnittingData) { k.Defects = v })
	e.clear("defects")
}

// ---- 染色字段 ----

func (e *Editor) dyeing(mut func(*entity.DyeingData)) {
	if e.rec.DyeingData == nil {
		return
	}
	data := *e.rec.DyeingData
	mut(&data)
	e.rec.DyeingData = &data
}

// SetFabricType 织造与染色共用，按当前类型落到对应载荷。
func (e *Editor) SetFabricType(v string) {
	e.knitting(func(k *entity.KnittingData) { k.FabricType = v })
	e.dyeing(func(d *entity.DyeingData) { d.FabricType = v })
	e.clear("fabricType")
}

// SetColor 染色与成衣共用。
func (e *Editor) SetColor(v string) {
	e.dyeing(func(d *entity.DyeingData) { d.Color = v })
	e.garments(func(g *entity.GarmentsData) { g.Color = v })
	e.clear("color")
}

func (e *Editor) SetDyeType(v string) {
	e.dyeing(func(d *entity.DyeingData) { d.DyeType = v })
	e.clear("dyeType")
}

func (e *Editor) SetBatchWeight(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.BatchWeight = v })
	e.clear("batchWeight")
}

func (e *Editor) SetLiquorRatio(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.LiquorRatio = v })
	e.clear("liquorRatio")
}

func (e *Editor) SetTemperature(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.Temperature = v })
	e.clear("temperature")
}

func (e *Editor) SetPH(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.PH = v })
	e.clear("ph")
}

func (e *Editor) SetProcessTime(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.ProcessTime = v })
	e.clear("processTime")
}

func (e *Editor) SetChemicalConsumption(v entity.ChemicalConsumption) {
	e.dyeing(func(d *entity.DyeingData) { d.ChemicalConsumption = v })
	e.clear("chemicalConsumption")
}

func (e *Editor) SetQualityResults(v entity.QualityResults) {
	e.dyeing(func(d *entity.DyeingData) { d.QualityResults = v })
	e.clear("qualityResults")
}

func (e *Editor) SetWaterConsumption(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.WaterConsumption = v })
	e.clear("waterConsumption")
}

func (e *Editor) SetEnergyConsumption(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.EnergyConsumption = v })
	e.clear("energyConsumption")
}

func (e *Editor) SetWasteGenerated(v float64) {
	e.dyeing(func(d *entity.DyeingData) { d.WasteGenerated = v })
	e.clear("wasteGenerated")
}

// ---- 成衣字段 ----

func (e *Editor) garments(mut func(*entity.GarmentsData)) {
	if e.rec.GarmentsData == nil {
		return
	}
	data := *e.rec.GarmentsData
	mut(&data)
	e.rec.GarmentsData = &data
}

func (e *Editor) SetStyle(v string) {
	e.garments(func(g *entity.GarmentsData) { g.Style = v })
	e.clear("style")
}

func (e *Editor) SetSize(v string) {
	e.garments(func(g *entity.GarmentsData) { g.Size = v })
	e.clear("size")
}

func (e *Editor) SetTargetQuantity(v float64) {
	e.garments(func(g *entity.GarmentsData) {
		g.TargetQuantity = v
		recomputeEfficiency(&g.Efficiency, g.CompletedQuantity, g.TargetQuantity)
	})
	e.clear("targetQuantity")
}

func (e *Editor) SetCompletedQuantity(v float64) {
	e.garments(func(g *entity.GarmentsData) {
		g.CompletedQuantity = v
		recomputeEfficiency(&g.Efficiency, g.CompletedQuantity, g.TargetQuantity)
	})
	e.clear("completedQuantity")
}

func (e *Editor) SetRework(v int) {
	e.garments(func(g *entity.GarmentsData) { g.Rework = v })
	e.clear("rework")
}

func (e *Editor) SetGarmentDefects(v entity.GarmentDefects) {
	e.garments(func(g *entity.GarmentsData) { g.Defects = v })
	e.clear("defects")
}

func (e *Editor) SetOperations(v entity.OperationBreakdown) {
	e.garments(func(g *entity.GarmentsData) { g.Operations = v })
	e.clear("operations")
}

// ---- 派生字段 ----

// recomputeHours 起止时间都在场时重算工时。时间格式非法则不更新。
func (e *Editor) recomputeHours() {
	if e.rec.StartTime == "" || e.rec.EndTime == "" {
		return
	}
	hours, ok := ElapsedHours(e.rec.StartTime, e.rec.EndTime)
	if !ok {
		return
	}
	e.rec.TotalHours = hours
}

// ElapsedHours 计算两个 HH:MM 时刻间的小时数，保留两位小数。
// 结束早于开始视为跨零点班次，前滚24小时；两者相等得0。
func ElapsedHours(start, end string) (float64, bool) {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return 0, false
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return 0, false
	}
	minutes := et.Sub(st).Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}
	return math.Round(minutes/60*100) / 100, true
}

// recomputeEfficiency 目标>0时重算效率(取整百分比)，否则保持原值。
// 不做封顶，超产可以超过100。
func recomputeEfficiency(dst *float64, actual, target float64) {
	if target <= 0 {
		return
	}
	*dst = math.Round(actual / target * 100)
}
