package repo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"pocket-pic-server/internal/model"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	"pocket-pic-server/internal/testutils"

	"gorm.io/gorm"
)

type repoFixture struct {
	db         *gorm.DB
	images     ImageStore
	user       *model.User
	category   *model.Category
	blobSerial int
}

func setupRepo(t *testing.T) *repoFixture {
	t.Helper()

	db := testutils.SetupDB(t)

	user := &model.User{Username: "uploader_1", Password: "x", Admin: false}
	if err := userrepo.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	category := &model.Category{Name: "风景"}
	if err := categoryrepo.NewCategoryRepository(db).Create(category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	return &repoFixture{
		db:       db,
		images:   NewImageRepository(db),
		user:     user,
		category: category,
	}
}

func (f *repoFixture) newImage(size int64) *model.Image {
	f.blobSerial++
	return &model.Image{
		OriginalName: fmt.Sprintf("pic_%d.png", f.blobSerial),
		StoredName:   fmt.Sprintf("stored-%d.png", f.blobSerial),
		Path:         fmt.Sprintf("2026/08/29/stored-%d.png", f.blobSerial),
		MimeType:     "image/png",
		Size:         size,
		UploadStatus: model.UploadStatusProcessing,
		UploadedAt:   time.Now().Unix(),
		CategoryID:   f.category.ID,
		UserID:       f.user.ID,
	}
}

func (f *repoFixture) reloadCounters(t *testing.T) (storageUsed int64, imageCount int64) {
	t.Helper()
	var user model.User
	if err := f.db.First(&user, f.user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	var category model.Category
	if err := f.db.First(&category, f.category.ID).Error; err != nil {
		t.Fatalf("reload category: %v", err)
	}
	return user.StorageUsed, category.ImageCount
}

// 测试内容：创建记录的同时在同一事务内记账，多次创建累计正确。
func TestCreateWithAccounting(t *testing.T) {
	f := setupRepo(t)

	if err := f.images.CreateWithAccounting(f.newImage(100)); err != nil {
		t.Fatalf("CreateWithAccounting error: %v", err)
	}
	if err := f.images.CreateWithAccounting(f.newImage(50)); err != nil {
		t.Fatalf("CreateWithAccounting error: %v", err)
	}

	used, count := f.reloadCounters(t)
	if used != 150 {
		t.Fatalf("期望 storage_used=150，实际为 %d", used)
	}
	if count != 2 {
		t.Fatalf("期望 image_count=2，实际为 %d", count)
	}
}

// 测试内容：新记录以 processing 落库，MarkCompleted 后才是 completed。
func TestMarkCompleted(t *testing.T) {
	f := setupRepo(t)

	image := f.newImage(10)
	if err := f.images.CreateWithAccounting(image); err != nil {
		t.Fatalf("CreateWithAccounting error: %v", err)
	}

	got, err := f.images.FindByID(image.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.UploadStatus != model.UploadStatusProcessing {
		t.Fatalf("期望初始状态 processing，实际为 %q", got.UploadStatus)
	}

	if err := f.images.MarkCompleted(image.ID); err != nil {
		t.Fatalf("MarkCompleted error: %v", err)
	}
	got, err = f.images.FindByID(image.ID)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.UploadStatus != model.UploadStatusCompleted {
		t.Fatalf("期望状态 completed，实际为 %q", got.UploadStatus)
	}
}

// 测试内容：删除记录时扣减两个计数器，记录从库中消失。
func TestDeleteWithAccounting(t *testing.T) {
	f := setupRepo(t)

	a := f.newImage(100)
	b := f.newImage(50)
	for _, img := range []*model.Image{a, b} {
		if err := f.images.CreateWithAccounting(img); err != nil {
			t.Fatalf("CreateWithAccounting error: %v", err)
		}
	}

	result, err := f.images.DeleteWithAccounting(a)
	if err != nil {
		t.Fatalf("DeleteWithAccounting error: %v", err)
	}
	if result.StorageClamped || result.ImageCountClamped {
		t.Fatalf("余量充足时不应触发钳制: %+v", result)
	}

	used, count := f.reloadCounters(t)
	if used != 50 {
		t.Fatalf("期望 storage_used=50，实际为 %d", used)
	}
	if count != 1 {
		t.Fatalf("期望 image_count=1，实际为 %d", count)
	}

	if _, err := f.images.FindByID(a.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望记录已删除，实际 err=%v", err)
	}
}

// 测试内容：计数器不足以扣减时钳制为零并上报，不出现负数。
func TestDeleteWithAccounting_ClampsAtZero(t *testing.T) {
	f := setupRepo(t)

	image := f.newImage(100)
	if err := f.images.CreateWithAccounting(image); err != nil {
		t.Fatalf("CreateWithAccounting error: %v", err)
	}

	// 人为制造计数偏差：用量小于记录大小，分类计数为零
	if err := f.db.Model(&model.User{}).Where("id = ?", f.user.ID).
		UpdateColumn("storage_used", 30).Error; err != nil {
		t.Fatalf("set storage_used: %v", err)
	}
	if err := f.db.Model(&model.Category{}).Where("id = ?", f.category.ID).
		UpdateColumn("image_count", 0).Error; err != nil {
		t.Fatalf("set image_count: %v", err)
	}

	result, err := f.images.DeleteWithAccounting(image)
	if err != nil {
		t.Fatalf("DeleteWithAccounting error: %v", err)
	}
	if !result.StorageClamped {
		t.Fatalf("期望 StorageClamped=true")
	}
	if !result.ImageCountClamped {
		t.Fatalf("期望 ImageCountClamped=true")
	}

	used, count := f.reloadCounters(t)
	if used != 0 {
		t.Fatalf("期望钳制后 storage_used=0，实际为 %d", used)
	}
	if count != 0 {
		t.Fatalf("期望钳制后 image_count=0，实际为 %d", count)
	}
}

// 测试内容：按用户/分类过滤与模糊搜索。
func TestListImages(t *testing.T) {
	f := setupRepo(t)

	sunset := f.newImage(10)
	sunset.OriginalName = "sunset.png"
	sunset.Description = "黄昏的海边"
	beach := f.newImage(20)
	beach.OriginalName = "beach.png"
	beach.Tags = []string{"sea", "summer"}
	for _, img := range []*model.Image{sunset, beach} {
		if err := f.images.CreateWithAccounting(img); err != nil {
			t.Fatalf("CreateWithAccounting error: %v", err)
		}
	}

	images, total, err := f.images.ListImages(ListImagesParams{UserID: &f.user.ID, Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("ListImages error: %v", err)
	}
	if total != 2 || len(images) != 2 {
		t.Fatalf("期望 2 条记录，实际 total=%d len=%d", total, len(images))
	}

	images, total, err = f.images.ListImages(ListImagesParams{UserID: &f.user.ID, Search: "sunset", Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("ListImages error: %v", err)
	}
	if total != 1 || len(images) != 1 || images[0].OriginalName != "sunset.png" {
		t.Fatalf("期望按文件名命中 sunset.png，实际 %v", images)
	}

	images, total, err = f.images.ListImages(ListImagesParams{UserID: &f.user.ID, Search: "summer", Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("ListImages error: %v", err)
	}
	if total != 1 || len(images) != 1 || images[0].OriginalName != "beach.png" {
		t.Fatalf("期望按标签命中 beach.png，实际 %v", images)
	}

	otherUser := uint(9999)
	_, total, err = f.images.ListImages(ListImagesParams{UserID: &otherUser, Offset: 0, Limit: 10})
	if err != nil {
		t.Fatalf("ListImages error: %v", err)
	}
	if total != 0 {
		t.Fatalf("期望其他用户看不到记录，实际 total=%d", total)
	}
}
