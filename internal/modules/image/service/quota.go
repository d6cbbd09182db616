package service

import (
	"fmt"
	"log"
	"pocket-pic-server/internal/model"
	platformservice "pocket-pic-server/internal/platform/service"
)

// quotaFor 返回用户的存储配额。未单独设置时使用全局默认值。
func (s *Service) quotaFor(user *model.User) int64 {
	if user.StorageQuota != nil {
		return *user.StorageQuota
	}
	return s.DefaultStorageQuota()
}

// CheckFits 检查用户当前用量加上 additionalBytes 是否仍在配额内。
// 该预检与后续的计数写入之间存在并发窗口：同一用户的两次并发上传可能
// 都通过检查然后都落账，造成有限的超额。计数本身通过原子增减收敛，
// 这里接受这种有界超额，不引入分布式锁。
func (s *Service) CheckFits(userID uint, additionalBytes int64) error {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		log.Printf("Get user error: %v\n", err)
		return platformservice.NewInternalError("查询用户信息失败")
	}

	usedSize := user.StorageUsed
	quota := s.quotaFor(user)

	if usedSize+additionalBytes > quota {
		return platformservice.NewQuotaExceededError(
			fmt.Sprintf("存储空间不足，上传失败。当前已用: %d B, 剩余: %d B", usedSize, quota-usedSize))
	}
	return nil
}

// StorageUsage 返回用户当前的用量与配额，供个人中心展示。
func (s *Service) StorageUsage(userID uint) (used int64, quota int64, err error) {
	user, err := s.userStore.FindByID(userID)
	if err != nil {
		return 0, 0, platformservice.NewInternalError("查询用户信息失败")
	}
	return user.StorageUsed, s.quotaFor(user), nil
}
