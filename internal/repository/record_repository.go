package repository

import (
	"context"
	"errors"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"gorm.io/gorm"
)

// ProductionRecordRepository 生产记录仓库
type ProductionRecordRepository struct {
	db *gorm.DB
}

func NewProductionRecordRepository(db *gorm.DB) *ProductionRecordRepository {
	return &ProductionRecordRepository{db: db}
}

func (r *ProductionRecordRepository) Create(ctx context.Context, rec *entity.ProductionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ProductionRecordRepository) FindByID(ctx context.Context, id string) (*entity.ProductionRecord, error) {
	var rec entity.ProductionRecord
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *ProductionRecordRepository) Update(ctx context.Context, rec *entity.ProductionRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Delete 软删除
func (r *ProductionRecordRepository) Delete(ctx context.Context, id string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&entity.ProductionRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordListParams 列表查询参数
type RecordListParams struct {
	Kind      string
	Shift     string
	MachineNo string
	DateFrom  string // YYYY-MM-DD (含)
	DateTo    string // YYYY-MM-DD (含)
	Keyword   string
	Page      int
	PageSize  int
}

func (r *ProductionRecordRepository) List(ctx context.Context, params RecordListParams) ([]entity.ProductionRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.ProductionRecord{}).
		Where("deleted_at IS NULL")

	if params.Kind != "" {
		query = query.Where("kind = ?", params.Kind)
	}
	if params.Shift != "" {
		query = query.Where("shift = ?", params.Shift)
	}
	if params.MachineNo != "" {
		query = query.Where("machine_no = ?", params.MachineNo)
	}
	if params.DateFrom != "" {
		query = query.Where("date >= ?", params.DateFrom)
	}
	if params.DateTo != "" {
		query = query.Where("date <= ?", params.DateTo)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("operator ILIKE ? OR supervisor ILIKE ? OR machine_no ILIKE ?", kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = 20
	}

	var records []entity.ProductionRecord
	err := query.
		Order("date DESC, created_at DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&records).Error
	return records, total, err
}

// ListByDateRange 导出用：日期区间内全部记录，不分页。
func (r *ProductionRecordRepository) ListByDateRange(ctx context.Context, kind, dateFrom, dateTo string) ([]entity.ProductionRecord, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.ProductionRecord{}).
		Where("deleted_at IS NULL")
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if dateFrom != "" {
		query = query.Where("date >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("date <= ?", dateTo)
	}
	var records []entity.ProductionRecord
	err := query.Order("date ASC, created_at ASC").Find(&records).Error
	return records, err
}

// ListByDate 看板用：某一天的全部记录。
func (r *ProductionRecordRepository) ListByDate(ctx context.Context, date string) ([]entity.ProductionRecord, error) {
	var records []entity.ProductionRecord
	err := r.db.WithContext(ctx).
		Where("date = ? AND deleted_at IS NULL", date).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
