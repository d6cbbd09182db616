package repo

import (
	"pocket-pic-server/internal/model"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func (r *ImageRepository) CreateWithAccounting(image *model.Image) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(image).Error; err != nil {
			return err
		}
		// 原子增加已用空间，并发上传同一用户也能收敛到正确总量
		if err := tx.Model(&model.User{}).Where("id = ?", image.UserID).
			UpdateColumn("storage_used", gorm.Expr("storage_used + ?", image.Size)).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Category{}).Where("id = ?", image.CategoryID).
			UpdateColumn("image_count", gorm.Expr("image_count + ?", 1)).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *ImageRepository) MarkCompleted(imageID uint) error {
	return r.db.Model(&model.Image{}).Where("id = ?", imageID).
		UpdateColumn("upload_status", model.UploadStatusCompleted).Error
}

func (r *ImageRepository) DeleteWithAccounting(image *model.Image) (AccountingResult, error) {
	var result AccountingResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(image).Error; err != nil {
			return err
		}

		// 余量充足时正常扣减；不足时钳制为零并标记，留给上层记日志
		res := tx.Model(&model.User{}).Where("id = ? AND storage_used >= ?", image.UserID, image.Size).
			UpdateColumn("storage_used", gorm.Expr("storage_used - ?", image.Size))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result.StorageClamped = true
			if err := tx.Model(&model.User{}).Where("id = ?", image.UserID).
				UpdateColumn("storage_used", 0).Error; err != nil {
				return err
			}
		}

		res = tx.Model(&model.Category{}).Where("id = ? AND image_count >= 1", image.CategoryID).
			UpdateColumn("image_count", gorm.Expr("image_count - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			result.ImageCountClamped = true
			if err := tx.Model(&model.Category{}).Where("id = ?", image.CategoryID).
				UpdateColumn("image_count", 0).Error; err != nil {
				return err
			}
		}
		return nil
	})

	return result, err
}

func (r *ImageRepository) FindByID(id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindByIDAndUserID(imageID uint, userID uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.Where("id = ? AND user_id = ?", imageID, userID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) ListImages(params ListImagesParams) ([]model.Image, int64, error) {
	var images []model.Image
	var total int64

	query := r.db.Model(&model.Image{})
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("original_name LIKE ? OR description LIKE ? OR tags LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id desc").Offset(params.Offset).Limit(params.Limit).Find(&images).Error; err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

func (r *ImageRepository) FindAll() ([]model.Image, error) {
	var images []model.Image
	if err := r.db.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Image{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImageRepository) SumAllSize() (int64, error) {
	var total int64
	if err := r.db.Model(&model.Image{}).Select("COALESCE(SUM(size), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
