package dto

type ProfileResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Admin        bool   `json:"admin"`
	StorageUsed  int64  `json:"storage_used"`
	StorageQuota int64  `json:"storage_quota"`
}
