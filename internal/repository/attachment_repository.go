package repository

import (
	"context"
	"errors"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"gorm.io/gorm"
)

// AttachmentRepository 记录附件仓库
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, att *entity.RecordAttachment) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*entity.RecordAttachment, error) {
	var att entity.RecordAttachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &att, nil
}

func (r *AttachmentRepository) ListByRecord(ctx context.Context, recordID string) ([]entity.RecordAttachment, error) {
	var atts []entity.RecordAttachment
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("created_at ASC").
		Find(&atts).Error
	return atts, err
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.RecordAttachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
