package service

import (
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/config"
	"github.com/abrahamlincoln12121461-cpu/texhub/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	Production *ProductionService
	Export     *ExportService
	Dashboard  *DashboardService
	Attachment *AttachmentService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端，未配置时附件上传不可用
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	return &Services{
		Production: NewProductionService(repos.Record),
		Export:     NewExportService(repos.Record),
		Dashboard:  NewDashboardService(repos.Record, rdb),
		Attachment: NewAttachmentService(repos.Attachment, repos.Record, minioClient, cfg.MinIO.Bucket),
	}
}
