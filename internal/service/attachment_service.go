package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abrahamlincoln12121461-cpu/texhub/internal/model/entity"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// AttachmentService 记录附件服务，文件存MinIO、元数据存库
type AttachmentService struct {
	attRepo     *repository.AttachmentRepository
	recordRepo  *repository.ProductionRecordRepository
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(
	attRepo *repository.AttachmentRepository,
	recordRepo *repository.ProductionRecordRepository,
	minioClient *minio.Client,
	bucketName string,
) *AttachmentService {
	return &AttachmentService{
		attRepo:     attRepo,
		recordRepo:  recordRepo,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// Upload 上传附件到对象存储并登记元数据
func (s *AttachmentService) Upload(ctx context.Context, recordID, fileName string, reader io.Reader, fileSize int64, contentType, userID string) (*entity.RecordAttachment, error) {
	if _, err := s.recordRepo.FindByID(ctx, recordID); err != nil {
		return nil, err
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("object storage not configured")
	}

	id := uuid.New().String()[:32]
	objectName := fmt.Sprintf("records/%s/%s/%s", recordID, id, fileName)

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	att := &entity.RecordAttachment{
		ID:         id,
		RecordID:   recordID,
		FileName:   fileName,
		FilePath:   objectName,
		FileSize:   fileSize,
		MimeType:   contentType,
		UploadedBy: userID,
		CreatedAt:  time.Now(),
	}
	if err := s.attRepo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("save attachment metadata: %w", err)
	}
	return att, nil
}

func (s *AttachmentService) List(ctx context.Context, recordID string) ([]entity.RecordAttachment, error) {
	if _, err := s.recordRepo.FindByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.attRepo.ListByRecord(ctx, recordID)
}

// Download 返回附件内容流和元数据，调用方负责Close
func (s *AttachmentService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.RecordAttachment, error) {
	att, err := s.attRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.minioClient == nil {
		return nil, nil, fmt.Errorf("object storage not configured")
	}

	object, err := s.minioClient.GetObject(ctx, s.bucketName, att.FilePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return object, att, nil
}

func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	att, err := s.attRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.minioClient != nil {
		if err := s.minioClient.RemoveObject(ctx, s.bucketName, att.FilePath, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object: %w", err)
		}
	}
	return s.attRepo.Delete(ctx, id)
}
