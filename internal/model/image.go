package model

// 上传状态。记录先以 processing 落库，文件与记录都确认后才置为 completed。
const (
	UploadStatusQueued     = "queued"
	UploadStatusProcessing = "processing"
	UploadStatusCompleted  = "completed"
	UploadStatusFailed     = "failed"
)

type Image struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	OriginalName string   `json:"original_name" gorm:"not null"`
	StoredName   string   `json:"stored_name" gorm:"not null;unique"`
	Path         string   `json:"path" gorm:"not null;unique"` // 相对上传根目录的定位符
	MimeType     string   `json:"mime_type" gorm:"not null"`
	Size         int64    `json:"size" gorm:"not null"`
	Tags         []string `json:"tags" gorm:"serializer:json"`
	Alt          string   `json:"alt"`
	Description  string   `json:"description"`
	UploadStatus string   `json:"upload_status" gorm:"not null;default:queued;index"`
	UploadedAt   int64    `json:"uploaded_at" gorm:"not null;index"`
	CategoryID   uint     `json:"category_id" gorm:"not null;index"`
	Category     Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT;" json:"-"`
	UserID       uint     `json:"user_id" gorm:"not null;index"`
	User         User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
}
