package repo

import "pocket-pic-server/internal/model"

type ListImagesParams struct {
	UserID     *uint
	CategoryID *uint
	// Search 在原始文件名、描述、标签上做模糊匹配
	Search string
	Offset int
	Limit  int
}

// AccountingResult 记录一次扣减中计数器是否被钳制到零。
// 被钳制说明计数器与实际数据出现过偏差，调用方应记录日志而非报错。
type AccountingResult struct {
	StorageClamped    bool
	ImageCountClamped bool
}

type ImageStore interface {
	// CreateWithAccounting 在同一事务内创建图片记录（processing 状态）、
	// 原子增加用户已用空间、原子增加分类图片计数。
	CreateWithAccounting(image *model.Image) error
	// MarkCompleted 将记录置为 completed，仅在文件与记录都确认后调用。
	MarkCompleted(imageID uint) error
	// DeleteWithAccounting 在同一事务内删除记录并扣减两个计数器。
	// 扣减不会把计数器打成负数：不足时钳制为零并在返回值中标记。
	DeleteWithAccounting(image *model.Image) (AccountingResult, error)
	FindByID(id uint) (*model.Image, error)
	FindByIDAndUserID(imageID uint, userID uint) (*model.Image, error)
	ListImages(params ListImagesParams) ([]model.Image, int64, error)
	// FindAll 返回全部图片记录，供孤儿审计比对使用。
	FindAll() ([]model.Image, error)
	CountAll() (int64, error)
	SumAllSize() (int64, error)
}
