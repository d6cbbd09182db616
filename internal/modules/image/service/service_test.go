package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"pocket-pic-server/internal/blob"
	"pocket-pic-server/internal/config"
	"pocket-pic-server/internal/model"
	categoryrepo "pocket-pic-server/internal/modules/category/repo"
	moduledto "pocket-pic-server/internal/modules/image/dto"
	"pocket-pic-server/internal/modules/image/repo"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/testutils"

	"gorm.io/gorm"
)

type serviceFixture struct {
	cfg      config.Config
	db       *gorm.DB
	svc      *Service
	blobs    blob.Store
	images   repo.ImageStore
	user     *model.User
	category *model.Category
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()

	cfg := testutils.SetupConfig(t)
	db := testutils.SetupDB(t)

	blobs, err := blob.NewLocalStore(cfg.Upload.Path)
	if err != nil {
		t.Fatalf("NewLocalStore error: %v", err)
	}

	userStore := userrepo.NewUserRepository(db)
	categoryStore := categoryrepo.NewCategoryRepository(db)
	imageStore := repo.NewImageRepository(db)

	user := &model.User{Username: "uploader_1", Password: "x"}
	if err := userStore.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	category := &model.Category{Name: "默认分类"}
	if err := categoryStore.Create(category); err != nil {
		t.Fatalf("create category: %v", err)
	}

	svc := New(platformservice.NewAppService(), userStore, categoryStore, imageStore, blobs)
	return &serviceFixture{
		cfg:      cfg,
		db:       db,
		svc:      svc,
		blobs:    blobs,
		images:   imageStore,
		user:     user,
		category: category,
	}
}

func (f *serviceFixture) countBlobs(t *testing.T) int {
	t.Helper()
	n := 0
	if err := f.blobs.Walk(func(locator string, size int64) error {
		n++
		return nil
	}); err != nil {
		t.Fatalf("walk blobs: %v", err)
	}
	return n
}

func (f *serviceFixture) reloadUser(t *testing.T) *model.User {
	t.Helper()
	var user model.User
	if err := f.db.First(&user, f.user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	return &user
}

func (f *serviceFixture) setUsage(t *testing.T, used int64, quota int64) {
	t.Helper()
	if err := f.db.Model(&model.User{}).Where("id = ?", f.user.ID).
		UpdateColumns(map[string]interface{}{"storage_used": used, "storage_quota": quota}).Error; err != nil {
		t.Fatalf("set usage: %v", err)
	}
}

func (f *serviceFixture) ingest(t *testing.T, files ...*multipart.FileHeader) (*moduledto.BatchResult, error) {
	t.Helper()
	return f.svc.Ingest(context.Background(), IngestRequest{
		UserID:     f.user.ID,
		CategoryID: f.category.ID,
		Files:      files,
	})
}

func assertErrorCode(t *testing.T, err error, code platformservice.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误 code=%s，实际为 nil", code)
	}
	serviceErr, ok := platformservice.AsServiceError(err)
	if !ok {
		t.Fatalf("期望 ServiceError，实际为 %T: %v", err, err)
	}
	if serviceErr.Code != code {
		t.Fatalf("期望 code=%s，实际为 %s (%s)", code, serviceErr.Code, serviceErr.Message)
	}
}

// 测试内容：单文件上传成功后，记录为 completed、文件落盘、用量与分类计数同步递增。
func TestIngest_SingleFileCompleted(t *testing.T) {
	f := setupService(t)

	content := testutils.PNGOfSize(t, 150)
	result, err := f.ingest(t, testutils.MustFileHeader(t, "photo.png", content))
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}

	if len(result.Completed) != 1 || len(result.Failures) != 0 {
		t.Fatalf("期望 1 成功 0 失败，实际 %d/%d", len(result.Completed), len(result.Failures))
	}

	view := result.Completed[0]
	if view.UploadStatus != model.UploadStatusCompleted {
		t.Fatalf("期望状态 completed，实际为 %q", view.UploadStatus)
	}
	if view.Size != 150 || view.MimeType != "image/png" || view.OriginalName != "photo.png" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.URL != f.cfg.Upload.URLPrefix+f.mustFind(t, view.ID).Path {
		t.Fatalf("URL 应为访问前缀加定位符: %q", view.URL)
	}

	if !f.blobs.Exists(f.mustFind(t, view.ID).Path) {
		t.Fatalf("期望文件已落盘")
	}
	if used := f.reloadUser(t).StorageUsed; used != 150 {
		t.Fatalf("期望 storage_used=150，实际为 %d", used)
	}
}

func (f *serviceFixture) mustFind(t *testing.T, id uint) *model.Image {
	t.Helper()
	image, err := f.images.FindByID(id)
	if err != nil {
		t.Fatalf("find image %d: %v", id, err)
	}
	return image
}

// 测试内容：批量上传后用户用量等于各文件大小之和，分类计数等于文件数。
func TestIngest_BatchAccounting(t *testing.T) {
	f := setupService(t)

	result, err := f.ingest(t,
		testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 100)),
		testutils.MustFileHeader(t, "b.png", testutils.PNGOfSize(t, 200)),
		testutils.MustFileHeader(t, "c.png", testutils.PNGOfSize(t, 300)),
	)
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if len(result.Completed) != 3 || len(result.Failures) != 0 {
		t.Fatalf("期望 3 成功 0 失败，实际 %d/%d", len(result.Completed), len(result.Failures))
	}

	if used := f.reloadUser(t).StorageUsed; used != 600 {
		t.Fatalf("期望 storage_used=600，实际为 %d", used)
	}

	var category model.Category
	if err := f.db.First(&category, f.category.ID).Error; err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if category.ImageCount != 3 {
		t.Fatalf("期望 image_count=3，实际为 %d", category.ImageCount)
	}
	if n := f.countBlobs(t); n != 3 {
		t.Fatalf("期望磁盘上 3 个文件，实际 %d", n)
	}
}

// 测试内容：批内任一文件类型不被允许则整批拒绝，无任何落盘与记账副作用。
func TestIngest_DisallowedTypeRejectsWholeBatch(t *testing.T) {
	f := setupService(t)

	_, err := f.ingest(t,
		testutils.MustFileHeader(t, "ok.png", testutils.PNGOfSize(t, 100)),
		testutils.MustFileHeader(t, "note.txt", []byte("plain text, not an image")),
	)
	assertErrorCode(t, err, platformservice.ErrorCodeValidation)

	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("整批拒绝不应留下文件，实际 %d 个", n)
	}
	if used := f.reloadUser(t).StorageUsed; used != 0 {
		t.Fatalf("整批拒绝不应记账，实际 storage_used=%d", used)
	}
	if count, err := f.images.CountAll(); err != nil || count != 0 {
		t.Fatalf("整批拒绝不应落库，实际 count=%d err=%v", count, err)
	}
}

// 测试内容：批内任一文件超过大小上限则整批拒绝。
func TestIngest_OversizeFileRejectsWholeBatch(t *testing.T) {
	f := setupService(t)

	// 把单文件上限压到 1MB，便于构造超限文件
	f.cfg.Upload.MaxUploadSizeMB = 1
	config.SetForTest(f.cfg)

	_, err := f.ingest(t,
		testutils.MustFileHeader(t, "small.png", testutils.PNGOfSize(t, 100)),
		testutils.MustFileHeader(t, "big.png", testutils.PNGOfSize(t, 1024*1024+1)),
	)
	assertErrorCode(t, err, platformservice.ErrorCodeValidation)

	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("整批拒绝不应留下文件，实际 %d 个", n)
	}
}

// 测试内容：空批次、超出批次数量上限、分类不存在均在任何 I/O 前拒绝。
func TestIngest_BatchValidation(t *testing.T) {
	f := setupService(t)

	_, err := f.ingest(t)
	assertErrorCode(t, err, platformservice.ErrorCodeValidation)

	f.cfg.Upload.MaxBatchCount = 2
	config.SetForTest(f.cfg)
	_, err = f.ingest(t,
		testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 50)),
		testutils.MustFileHeader(t, "b.png", testutils.PNGOfSize(t, 50)),
		testutils.MustFileHeader(t, "c.png", testutils.PNGOfSize(t, 50)),
	)
	assertErrorCode(t, err, platformservice.ErrorCodeValidation)

	config.SetForTest(testutils.SetupConfig(t))
	_, err = f.svc.Ingest(context.Background(), IngestRequest{
		UserID:     f.user.ID,
		CategoryID: 9999,
		Files:      []*multipart.FileHeader{testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 50))},
	})
	assertErrorCode(t, err, platformservice.ErrorCodeValidation)

	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("批次级校验失败不应留下文件，实际 %d 个", n)
	}
}

// 测试内容：配额预检。已用 900/配额 1000 时，150 字节被拒、80 字节通过，
// 拒绝的批次不产生任何副作用。
func TestIngest_QuotaPrecheck(t *testing.T) {
	f := setupService(t)
	f.setUsage(t, 900, 1000)

	_, err := f.ingest(t, testutils.MustFileHeader(t, "big.png", testutils.PNGOfSize(t, 150)))
	assertErrorCode(t, err, platformservice.ErrorCodeQuotaExceeded)

	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("配额拒绝不应留下文件，实际 %d 个", n)
	}
	if used := f.reloadUser(t).StorageUsed; used != 900 {
		t.Fatalf("配额拒绝不应改变用量，实际 %d", used)
	}

	result, err := f.ingest(t, testutils.MustFileHeader(t, "small.png", testutils.PNGOfSize(t, 80)))
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	if len(result.Completed) != 1 {
		t.Fatalf("期望 80 字节文件上传成功")
	}
	if used := f.reloadUser(t).StorageUsed; used != 980 {
		t.Fatalf("期望 storage_used=980，实际为 %d", used)
	}
}

// 测试内容：配额按批次总大小预检，多个小文件合计超限也整批拒绝。
func TestIngest_QuotaCountsBatchTotal(t *testing.T) {
	f := setupService(t)
	f.setUsage(t, 0, 250)

	_, err := f.ingest(t,
		testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 100)),
		testutils.MustFileHeader(t, "b.png", testutils.PNGOfSize(t, 100)),
		testutils.MustFileHeader(t, "c.png", testutils.PNGOfSize(t, 100)),
	)
	assertErrorCode(t, err, platformservice.ErrorCodeQuotaExceeded)

	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("配额拒绝不应留下文件，实际 %d 个", n)
	}
}

// failOnNthCreate 包装 ImageStore，使第 n 次 CreateWithAccounting 失败。
type failOnNthCreate struct {
	repo.ImageStore
	calls  int
	failOn int
}

func (s *failOnNthCreate) CreateWithAccounting(image *model.Image) error {
	s.calls++
	if s.calls == s.failOn {
		return errors.New("simulated db failure")
	}
	return s.ImageStore.CreateWithAccounting(image)
}

// 测试内容：批内单个文件落库失败不影响其他文件，失败文件的已写入
// 内容被补偿删除，用量只计成功的文件。
func TestIngest_PartialFailureCompensates(t *testing.T) {
	f := setupService(t)

	failing := &failOnNthCreate{ImageStore: f.images, failOn: 2}
	svc := New(platformservice.NewAppService(),
		userrepo.NewUserRepository(f.db),
		categoryrepo.NewCategoryRepository(f.db),
		failing, f.blobs)

	result, err := svc.Ingest(context.Background(), IngestRequest{
		UserID:     f.user.ID,
		CategoryID: f.category.ID,
		Files: []*multipart.FileHeader{
			testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 100)),
			testutils.MustFileHeader(t, "b.png", testutils.PNGOfSize(t, 200)),
			testutils.MustFileHeader(t, "c.png", testutils.PNGOfSize(t, 300)),
		},
	})
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}

	if len(result.Completed) != 2 || len(result.Failures) != 1 {
		t.Fatalf("期望 2 成功 1 失败，实际 %d/%d", len(result.Completed), len(result.Failures))
	}
	if result.Failures[0].FileName != "b.png" {
		t.Fatalf("期望失败文件为 b.png，实际 %q", result.Failures[0].FileName)
	}

	// 失败文件的补偿清理必须执行：磁盘上只有成功的两个文件
	if n := f.countBlobs(t); n != 2 {
		t.Fatalf("期望磁盘上 2 个文件，实际 %d", n)
	}
	if used := f.reloadUser(t).StorageUsed; used != 400 {
		t.Fatalf("期望只计成功文件 storage_used=400，实际为 %d", used)
	}
	if count, err := f.images.CountAll(); err != nil || count != 2 {
		t.Fatalf("期望 2 条记录，实际 count=%d err=%v", count, err)
	}
}

// 测试内容：请求取消后停止处理剩余文件，未处理的文件既不算成功也不算失败。
func TestIngest_ContextCanceledStopsProcessing(t *testing.T) {
	f := setupService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.svc.Ingest(ctx, IngestRequest{
		UserID:     f.user.ID,
		CategoryID: f.category.ID,
		Files: []*multipart.FileHeader{
			testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 100)),
			testutils.MustFileHeader(t, "b.png", testutils.PNGOfSize(t, 100)),
		},
	})
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}

	if len(result.Completed) != 0 || len(result.Failures) != 0 {
		t.Fatalf("取消后未处理的文件不应计入成功或失败，实际 %d/%d",
			len(result.Completed), len(result.Failures))
	}
	if n := f.countBlobs(t); n != 0 {
		t.Fatalf("取消后不应留下文件，实际 %d 个", n)
	}
}

// 测试内容：删除自己的图片后文件与记录都消失，计数回退；重复删除报不存在。
func TestDeleteImage(t *testing.T) {
	f := setupService(t)

	result, err := f.ingest(t, testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 120)))
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	imageID := result.Completed[0].ID
	path := f.mustFind(t, imageID).Path

	if err := f.svc.DeleteImage(f.user.ID, imageID); err != nil {
		t.Fatalf("DeleteImage error: %v", err)
	}

	if f.blobs.Exists(path) {
		t.Fatalf("删除后文件不应存在")
	}
	if _, err := f.images.FindByID(imageID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("期望记录已删除，实际 err=%v", err)
	}
	if used := f.reloadUser(t).StorageUsed; used != 0 {
		t.Fatalf("期望 storage_used 回退为 0，实际为 %d", used)
	}

	err = f.svc.DeleteImage(f.user.ID, imageID)
	assertErrorCode(t, err, platformservice.ErrorCodeNotFound)
}

// 测试内容：他人的图片按不存在处理，不暴露资源是否存在。
func TestDeleteImage_OtherUsersImage(t *testing.T) {
	f := setupService(t)

	result, err := f.ingest(t, testutils.MustFileHeader(t, "a.png", testutils.PNGOfSize(t, 100)))
	if err != nil {
		t.Fatalf("Ingest error: %v", err)
	}
	imageID := result.Completed[0].ID

	otherUserID := f.user.ID + 1
	err = f.svc.DeleteImage(otherUserID, imageID)
	assertErrorCode(t, err, platformservice.ErrorCodeNotFound)

	// 原图必须原样保留
	image := f.mustFind(t, imageID)
	if !f.blobs.Exists(image.Path) {
		t.Fatalf("他人删除失败后原图不应受影响")
	}
}

// 测试内容：读取与分页列表，他人图片不可见。
func TestGetImageAndList(t *testing.T) {
	f := setupService(t)

	var ids []uint
	for i := 0; i < 3; i++ {
		result, err := f.ingest(t, testutils.MustFileHeader(t, fmt.Sprintf("pic_%d.png", i), testutils.PNGOfSize(t, 100)))
		if err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
		ids = append(ids, result.Completed[0].ID)
	}

	view, err := f.svc.GetImage(f.user.ID, ids[0])
	if err != nil {
		t.Fatalf("GetImage error: %v", err)
	}
	if view.ID != ids[0] {
		t.Fatalf("期望 image %d，实际 %d", ids[0], view.ID)
	}

	_, err = f.svc.GetImage(f.user.ID+1, ids[0])
	assertErrorCode(t, err, platformservice.ErrorCodeNotFound)

	views, total, page, pageSize, err := f.svc.ListUserImages(moduledto.UserImageListRequest{
		PaginationRequest: moduledto.PaginationRequest{Page: 1, PageSize: 2},
		UserID:            f.user.ID,
	})
	if err != nil {
		t.Fatalf("ListUserImages error: %v", err)
	}
	if total != 3 || len(views) != 2 || page != 1 || pageSize != 2 {
		t.Fatalf("分页结果不符: total=%d len=%d page=%d pageSize=%d", total, len(views), page, pageSize)
	}
}

// 测试内容：配额读取。未单独设置时用全局默认，设置后用个人配额。
func TestStorageUsage(t *testing.T) {
	f := setupService(t)

	used, quota, err := f.svc.StorageUsage(f.user.ID)
	if err != nil {
		t.Fatalf("StorageUsage error: %v", err)
	}
	if used != 0 || quota != f.cfg.Storage.DefaultQuotaBytes {
		t.Fatalf("期望默认配额 %d，实际 used=%d quota=%d", f.cfg.Storage.DefaultQuotaBytes, used, quota)
	}

	f.setUsage(t, 500, 2048)
	used, quota, err = f.svc.StorageUsage(f.user.ID)
	if err != nil {
		t.Fatalf("StorageUsage error: %v", err)
	}
	if used != 500 || quota != 2048 {
		t.Fatalf("期望 used=500 quota=2048，实际 used=%d quota=%d", used, quota)
	}
}
