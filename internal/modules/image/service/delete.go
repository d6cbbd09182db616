package service

import (
	"errors"
	"log"
	platformservice "pocket-pic-server/internal/platform/service"

	"gorm.io/gorm"
)

// DeleteImage 删除用户自己的一张图片。
//
// 先删文件（尽力而为，失败只记日志），再删记录并扣减计数。
// 顺序上宁可泄漏一个孤儿文件（磁盘占用可由审计回收），
// 也不留下指向不存在文件的记录（直接面向用户的故障）。
// 非本人图片按不存在处理，不暴露资源是否存在。
func (s *Service) DeleteImage(userID uint, imageID uint) error {
	image, err := s.imageStore.FindByIDAndUserID(imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return platformservice.NewNotFoundError("图片不存在")
		}
		log.Printf("Find image error: %v, image id: %d\n", err, imageID)
		return platformservice.NewInternalError("查询图片失败")
	}

	// 1. 删文件
	removed, err := s.blobStore.Delete(image.Path)
	if err != nil {
		log.Printf("[清理失败] 删除文件失败，遗留孤儿文件: %s, err: %v\n", image.Path, err)
	} else if !removed {
		log.Printf("删除图片时文件已不存在: %s\n", image.Path)
	}

	// 2. 删记录并扣减用户用量与分类计数
	result, err := s.imageStore.DeleteWithAccounting(image)
	if err != nil {
		log.Printf("Delete image record error: %v, image id: %d\n", err, imageID)
		return platformservice.NewInternalError("删除图片记录失败")
	}
	if result.StorageClamped {
		log.Printf("[不一致] 用户 %d 的已用空间不足以扣减 %d B，已钳制为 0\n", image.UserID, image.Size)
	}
	if result.ImageCountClamped {
		log.Printf("[不一致] 分类 %d 的图片计数不足以扣减，已钳制为 0\n", image.CategoryID)
	}

	return nil
}
