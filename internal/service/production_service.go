package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/draft"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/google/uuid"
)

// ProductionService 生产记录服务。创建/更新都经过录入引擎：
// 引擎负责派生字段与校验，校验失败的 *draft.ValidationError 原样
// 上抛，合法记录在这里补齐ID与审计字段后落库。
type ProductionService struct {
	repo *repository.ProductionRecordRepository
}

func NewProductionService(repo *repository.ProductionRecordRepository) *ProductionService {
	return &ProductionService{repo: repo}
}

// KnittingInput 织造字段，未提供的字段不写入草稿
type KnittingInput struct {
	FabricType       *string                 `json:"fabric_type"`
	YarnType         *string                 `json:"yarn_type"`
	YarnLot          *string                 `json:"yarn_lot"`
	Gauge            *float64                `json:"gauge"`
	GSM              *float64                `json:"gsm"`
	Width            *float64                `json:"width"`
	RPM              *float64                `json:"rpm"`
	NeedleBreaks     *int                    `json:"needle_breaks"`
	TargetProduction *float64                `json:"target_production"`
	ActualProduction *float64                `json:"actual_production"`
	Defects          *entity.KnittingDefects `json:"defects"`
}

// DyeingInput 染色字段
type DyeingInput struct {
	FabricType          *string                     `json:"fabric_type"`
	Color               *string                     `json:"color"`
	DyeType             *string                     `json:"dye_type"`
	BatchWeight         *float64                    `json:"batch_weight"`
	LiquorRatio         *float64                    `json:"liquor_ratio"`
	Temperature         *float64                    `json:"temperature"`
	PH                  *float64                    `json:"ph"`
	ProcessTime         *float64                    `json:"process_time"`
	ChemicalConsumption *entity.ChemicalConsumption `json:"chemical_consumption"`
	QualityResults      *entity.QualityResults      `json:"quality_results"`
	WaterConsumption    *float64                    `json:"water_consumption"`
	EnergyConsumption   *float64                    `json:"energy_consumption"`
	WasteGenerated      *float64                    `json:"waste_generated"`
}

// GarmentsInput 成衣字段
type GarmentsInput struct {
	Style             *string                    `json:"style"`
	Size              *string                    `json:"size"`
	Color             *string                    `json:"color"`
	TargetQuantity    *float64                   `json:"target_quantity"`
	CompletedQuantity *float64                   `json:"completed_quantity"`
	Rework            *int                       `json:"rework"`
	Defects           *entity.GarmentDefects     `json:"defects"`
	Operations        *entity.OperationBreakdown `json:"operations"`
}

// RecordInput 创建/更新共用的字段集。total_hours与efficiency
// 不在其中，派生字段只由引擎写。
type RecordInput struct {
	Date         *string `json:"date"`
	Shift        *string `json:"shift"`
	Operator     *string `json:"operator"`
	Supervisor   *string `json:"supervisor"`
	MachineNo    *string `json:"machine_no"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	QualityGrade *string `json:"quality_grade"`
	Notes        *string `json:"notes"`

	Knitting *KnittingInput `json:"knitting"`
	Dyeing   *DyeingInput   `json:"dyeing"`
	Garments *GarmentsInput `json:"garments"`
}

// CreateRecordRequest 创建生产记录请求
type CreateRecordRequest struct {
	Kind string `json:"kind" binding:"required"`
	RecordInput
}

// UpdateRecordRequest 更新生产记录请求，只应用提供的字段
type UpdateRecordRequest struct {
	RecordInput
}

func (s *ProductionService) Create(ctx context.Context, req CreateRecordRequest, userID string) (*entity.ProductionRecord, error) {
	ed, err := draft.New(req.Kind)
	if err != nil {
		return nil, err
	}
	applyInput(ed, &req.RecordInput)

	rec, err := ed.Finalize()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec.ID = uuid.New().String()[:32]
	rec.CreatedBy = userID
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create production record: %w", err)
	}
	return &rec, nil
}

func (s *ProductionService) Update(ctx context.Context, id string, req UpdateRecordRequest) (*entity.ProductionRecord, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ed, err := draft.Edit(*existing)
	if err != nil {
		return nil, err
	}
	applyInput(ed, &req.RecordInput)

	rec, err := ed.Finalize()
	if err != nil {
		return nil, err
	}

	rec.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, &rec); err != nil {
		return nil, fmt.Errorf("update production record: %w", err)
	}
	return &rec, nil
}

func (s *ProductionService) Get(ctx context.Context, id string) (*entity.ProductionRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductionService) List(ctx context.Context, params repository.RecordListParams) ([]entity.ProductionRecord, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *ProductionService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// applyInput 把请求里出现的字段逐个喂给引擎的类型化setter。
// 与记录类型不符的载荷由引擎按空操作吞掉。
func applyInput(ed *draft.Editor, in *RecordInput) {
	setStr := func(v *string, set func(string)) {
		if v != nil {
			set(*v)
		}
	}
	setF64 := func(v *float64, set func(float64)) {
		if v != nil {
			set(*v)
		}
	}
	setInt := func(v *int, set func(int)) {
		if v != nil {
			set(*v)
		}
	}

	setStr(in.Date, ed.SetDate)
	setStr(in.Shift, ed.SetShift)
	setStr(in.Operator, ed.SetOperator)
	setStr(in.Supervisor, ed.SetSupervisor)
	setStr(in.MachineNo, ed.SetMachineNo)
	setStr(in.StartTime, ed.SetStartTime)
	setStr(in.EndTime, ed.SetEndTime)
	setStr(in.QualityGrade, ed.SetQualityGrade)
	setStr(in.Notes, ed.SetNotes)

	if k := in.Knitting; k != nil {
		setStr(k.FabricType, ed.SetFabricType)
		setStr(k.YarnType, ed.SetYarnType)
		setStr(k.YarnLot, ed.SetYarnLot)
		setF64(k.Gauge, ed.SetGauge)
		setF64(k.GSM, ed.SetGSM)
		setF64(k.Width, ed.SetWidth)
		setF64(k.RPM, ed.SetRPM)
		setInt(k.NeedleBreaks, ed.SetNeedleBreaks)
		setF64(k.TargetProduction, ed.SetTargetProduction)
		setF64(k.ActualProduction, ed.SetActualProduction)
		if k.Defects != nil {
			ed.SetKnittingDefects(*k.Defects)
		}
	}

	if d := in.Dyeing; d != nil {
		setStr(d.FabricType, ed.SetFabricType)
		setStr(d.Color, ed.SetColor)
		setStr(d.DyeType, ed.SetDyeType)
		setF64(d.BatchWeight, ed.SetBatchWeight)
		setF64(d.LiquorRatio, ed.SetLiquorRatio)
		setF64(d.Temperature, ed.SetTemperature)
		setF64(d.PH, ed.SetPH)
		setF64(d.ProcessTime, ed.SetProcessTime)
		if d.ChemicalConsumption != nil {
			ed.SetChemicalConsumption(*d.ChemicalConsumption)
		}
		if d.QualityResults != nil {
			ed.SetQualityResults(*d.QualityResults)
		}
		setF64(d.WaterConsumption, ed.SetWaterConsumption)
		setF64(d.EnergyConsumption, ed.SetEnergyConsumption)
		setF64(d.WasteGenerated, ed.SetWasteGenerated)
	}

	if g := in.Garments; g != nil {
		setStr(g.Style, ed.SetStyle)
		setStr(g.Size, ed.SetSize)
		setStr(g.Color, ed.SetColor)
		setF64(g.TargetQuantity, ed.SetTargetQuantity)
		setF64(g.CompletedQuantity, ed.SetCompletedQuantity)
		setInt(g.Rework, ed.SetRework)
		if g.Defects != nil {
			ed.SetGarmentDefects(*g.Defects)
		}
		if g.Operations != nil {
			ed.SetOperations(*g.Operations)
		}
	}
}
