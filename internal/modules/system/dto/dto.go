package dto

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
}

type ServerStatsResponse struct {
	ImageCount   int64              `json:"image_count"`
	StorageUsage int64              `json:"storage_usage"`
	UserCount    int64              `json:"user_count"`
	SystemInfo   SystemInfoResponse `json:"system_info"`
}

// AuditReport 孤儿审计结果：
// OrphanBlobs 磁盘上有文件但没有任何记录引用；
// OrphanRecords 记录存在但对应文件缺失。
// 审计只上报不清理，处置交给管理员。
type AuditReport struct {
	OrphanBlobs    []string `json:"orphan_blobs"`
	OrphanRecords  []uint   `json:"orphan_records"`
	CheckedBlobs   int      `json:"checked_blobs"`
	CheckedRecords int      `json:"checked_records"`
}
