package service

import (
	"testing"

	"pocket-pic-server/internal/model"
	"pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/testutils"
)

// 测试内容：个人信息返回用量与配额，未单独设置配额时用全局默认。
func TestProfile(t *testing.T) {
	cfg := testutils.SetupConfig(t)
	db := testutils.SetupDB(t)
	userStore := repo.NewUserRepository(db)
	svc := New(platformservice.NewAppService(), userStore)

	user := &model.User{Username: "alice_1", Password: "x", StorageUsed: 1234}
	if err := userStore.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	profile, err := svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if profile.Username != "alice_1" || profile.StorageUsed != 1234 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.StorageQuota != cfg.Storage.DefaultQuotaBytes {
		t.Fatalf("期望默认配额 %d，实际 %d", cfg.Storage.DefaultQuotaBytes, profile.StorageQuota)
	}

	custom := int64(2048)
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumn("storage_quota", custom).Error; err != nil {
		t.Fatalf("set quota: %v", err)
	}
	profile, err = svc.Profile(user.ID)
	if err != nil {
		t.Fatalf("Profile error: %v", err)
	}
	if profile.StorageQuota != custom {
		t.Fatalf("期望个人配额 %d，实际 %d", custom, profile.StorageQuota)
	}

	_, err = svc.Profile(9999)
	if serviceErr, ok := platformservice.AsServiceError(err); !ok || serviceErr.Code != platformservice.ErrorCodeNotFound {
		t.Fatalf("期望 not_found，实际 %v", err)
	}
}
