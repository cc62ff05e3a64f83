package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RecordKind 生产记录类型
const (
	KindKnitting = "knitting"
	KindDyeing   = "dyeing"
	KindGarments = "garments"
)

// Shift 班次
const (
	ShiftA     = "A"
	ShiftB     = "B"
	ShiftC     = "C"
	ShiftNight = "night"
)

// QualityGrade 质量等级
const (
	GradeA      = "A"
	GradeB      = "B"
	GradeC      = "C"
	GradeReject = "reject"
)

// QualityResult 染色质量结果档位
const (
	ResultExcellent  = "excellent"
	ResultGood       = "good"
	ResultAcceptable = "acceptable"
	ResultPoor       = "poor"
)

// ProductionRecord 生产记录。kind决定三种载荷列中哪一列非空，
// 其余两列保持NULL。total_hours与载荷内efficiency为派生字段，由
// draft引擎计算，不接受外部写入。
type ProductionRecord struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Kind         string     `json:"kind" gorm:"size:16;not null;index"`
	Date         string     `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	Shift        string     `json:"shift" gorm:"size:16;not null"`
	Operator     string     `json:"operator" gorm:"size:64;not null"`
	Supervisor   string     `json:"supervisor" gorm:"size:64;not null"`
	MachineNo    string     `json:"machine_no" gorm:"size:32;not null;index"`
	StartTime    string     `json:"start_time" gorm:"size:5;not null"` // HH:MM
	EndTime      string     `json:"end_time" gorm:"size:5;not null"`   // HH:MM
	TotalHours   float64    `json:"total_hours" gorm:"type:decimal(6,2);default:0"`
	QualityGrade string     `json:"quality_grade" gorm:"size:16;not null"`
	Notes        string     `json:"notes" gorm:"type:text"`
	KnittingData *KnittingData `json:"knitting_data,omitempty" gorm:"type:jsonb"`
	DyeingData   *DyeingData   `json:"dyeing_data,omitempty" gorm:"type:jsonb"`
	GarmentsData *GarmentsData `json:"garments_data,omitempty" gorm:"type:jsonb"`
	CreatedBy    string     `json:"created_by" gorm:"size:32;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Attachments []RecordAttachment `json:"attachments,omitempty" gorm:"foreignKey:RecordID"`
}

func (ProductionRecord) TableName() string {
	return "production_records"
}

// KnittingDefects 织造疵点计数
type KnittingDefects struct {
	Holes        int `json:"holes"`
	DropStitches int `json:"drop_stitches"`
	YarnBreaks   int `json:"yarn_breaks"`
	Other        int `json:"other"`
}

// KnittingData 织造记录载荷
type KnittingData struct {
	FabricType       string          `json:"fabric_type"`
	YarnType         string          `json:"yarn_type"`
	YarnLot          string          `json:"yarn_lot"`
	Gauge            float64         `json:"gauge"`
	GSM              float64         `json:"gsm"`
	Width            float64         `json:"width"`
	RPM              float64         `json:"rpm"`
	NeedleBreaks     int             `json:"needle_breaks"`
	TargetProduction float64         `json:"target_production"`
	ActualProduction float64         `json:"actual_production"`
	Efficiency       float64         `json:"efficiency"`
	Defects          KnittingDefects `json:"defects"`
}

// ChemicalConsumption 化料消耗 (kg)
type ChemicalConsumption struct {
	Dyes        float64 `json:"dyes"`
	Salt        float64 `json:"salt"`
	Soda        float64 `json:"soda"`
	Auxiliaries float64 `json:"auxiliaries"`
}

// QualityResults 染色质量结果
type QualityResults struct {
	ColorMatch string `json:"color_match"`
	Fastness   string `json:"fastness"`
	Uniformity string `json:"uniformity"`
}

// DyeingData 染色记录载荷
type DyeingData struct {
	FabricType          string              `json:"fabric_type"`
	Color               string              `json:"color"`
	DyeType             string              `json:"dye_type"`
	BatchWeight         float64             `json:"batch_weight"`
	LiquorRatio         float64             `json:"liquor_ratio"`
	Temperature         float64             `json:"temperature"`
	PH                  float64             `json:"ph"`
	ProcessTime         float64             `json:"process_time"`
	ChemicalConsumption ChemicalConsumption `json:"chemical_consumption"`
	QualityResults      QualityResults      `json:"quality_results"`
	WaterConsumption    float64             `json:"water_consumption"`
	EnergyConsumption   float64             `json:"energy_consumption"`
	WasteGenerated      float64             `json:"waste_generated"`
}

// GarmentDefects 成衣疵点计数
type GarmentDefects struct {
	StitchingDefects   int `json:"stitching_defects"`
	MeasurementDefects int `json:"measurement_defects"`
	FabricDefects      int `json:"fabric_defects"`
	Other              int `json:"other"`
}

// OperationBreakdown 各工序完成数量
type OperationBreakdown struct {
	Cutting   int `json:"cutting"`
	Sewing    int `json:"sewing"`
	Finishing int `json:"finishing"`
	Packing   int `json:"packing"`
}

// GarmentsData 成衣记录载荷
type GarmentsData struct {
	Style             string             `json:"style"`
	Size              string             `json:"size"`
	Color             string             `json:"color"`
	TargetQuantity    float64            `json:"target_quantity"`
	CompletedQuantity float64            `json:"completed_quantity"`
	Efficiency        float64            `json:"efficiency"`
	Rework            int                `json:"rework"`
	Defects           GarmentDefects     `json:"defects"`
	Operations        OperationBreakdown `json:"operations"`
}

func (d KnittingData) Value() (driver.Value, error) { return json.Marshal(d) }
func (d *KnittingData) Scan(value interface{}) error { return scanJSONB(value, d) }

func (d DyeingData) Value() (driver.Value, error) { return json.Marshal(d) }
func (d *DyeingData) Scan(value interface{}) error { return scanJSONB(value, d) }

func (d GarmentsData) Value() (driver.Value, error) { return json.Marshal(d) }
func (d *GarmentsData) Scan(value interface{}) error { return scanJSONB(value, d) }

func scanJSONB(value, dst interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("unsupported jsonb source type %T", value)
		}
	}
	return json.Unmarshal(bytes, dst)
}
