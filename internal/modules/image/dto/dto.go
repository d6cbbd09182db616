package dto

import "pocket-pic-server/internal/model"

type ImageView struct {
	ID           uint     `json:"id"`
	URL          string   `json:"url"`
	OriginalName string   `json:"original_name"`
	StoredName   string   `json:"stored_name"`
	MimeType     string   `json:"mime_type"`
	Size         int64    `json:"size"`
	CategoryID   uint     `json:"category_id"`
	Tags         []string `json:"tags"`
	Alt          string   `json:"alt"`
	Description  string   `json:"description"`
	UploadStatus string   `json:"upload_status"`
	UploadedAt   int64    `json:"uploaded_at"`
}

// FileFailure 批次中单个文件的失败上报
type FileFailure struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// BatchResult 一次批量上传的结构化结果。
// 只要有文件成功即视为部分成功；批次级校验失败不会产生该结构。
type BatchResult struct {
	Completed []ImageView   `json:"completed"`
	Failures  []FileFailure `json:"failures"`
}

type PaginationRequest struct {
	Page     int
	PageSize int
}

type UserImageListRequest struct {
	PaginationRequest
	UserID     uint
	CategoryID *uint
	Search     string
}

func NewImageView(image *model.Image, urlPrefix string) ImageView {
	return ImageView{
		ID:           image.ID,
		URL:          urlPrefix + image.Path,
		OriginalName: image.OriginalName,
		StoredName:   image.StoredName,
		MimeType:     image.MimeType,
		Size:         image.Size,
		CategoryID:   image.CategoryID,
		Tags:         image.Tags,
		Alt:          image.Alt,
		Description:  image.Description,
		UploadStatus: image.UploadStatus,
		UploadedAt:   image.UploadedAt,
	}
}
