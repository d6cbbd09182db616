package service

import "pocket-pic-server/internal/config"

// AppService 提供各业务模块共享的应用级配置读取。
// 各模块 Service 嵌入它以复用这些读取方法。
type AppService struct{}

func NewAppService() *AppService {
	return &AppService{}
}

// DefaultStorageQuota 用户默认存储配额 (Bytes)
func (s *AppService) DefaultStorageQuota() int64 {
	quota := config.Get().Storage.DefaultQuotaBytes
	if quota <= 0 {
		quota = 1073741824 // 1GB
	}
	return quota
}

// MaxUploadBytes 单文件大小上限 (Bytes)
func (s *AppService) MaxUploadBytes() int64 {
	maxSizeMB := config.Get().Upload.MaxUploadSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return int64(maxSizeMB) * 1024 * 1024
}

// MaxBatchCount 单次上传批次的文件数上限
func (s *AppService) MaxBatchCount() int {
	count := config.Get().Upload.MaxBatchCount
	if count <= 0 {
		count = 20
	}
	return count
}

// AllowedMimePrefix 允许上传的 MIME 类型前缀
func (s *AppService) AllowedMimePrefix() string {
	prefix := config.Get().Upload.AllowedMimePrefix
	if prefix == "" {
		prefix = "image/"
	}
	return prefix
}
