package entity

import "time"

// RecordAttachment 生产记录附件（检验照片、报表扫描件等），
// 文件本体存MinIO，此处只存元数据。
type RecordAttachment struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	RecordID   string    `json:"record_id" gorm:"size:32;not null;index"`
	FileName   string    `json:"file_name" gorm:"size:256;not null"`
	FilePath   string    `json:"file_path" gorm:"size:512;not null"`
	FileSize   int64     `json:"file_size" gorm:"not null"`
	MimeType   string    `json:"mime_type" gorm:"size:128"`
	UploadedBy string    `json:"uploaded_by" gorm:"size:32;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (RecordAttachment) TableName() string {
	return "record_attachments"
}
