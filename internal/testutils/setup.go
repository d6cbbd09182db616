package testutils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync/atomic"
	"testing"

	"pocket-pic-server/internal/config"
	"pocket-pic-server/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// SetupDB initializes a unique in-memory SQLite database for testing
// and performs auto-migration.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:pps_%d?mode=memory&cache=shared", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := gdb.AutoMigrate(&model.User{}, &model.Category{}, &model.Image{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	return gdb
}

// SetupConfig installs a test configuration snapshot pointing the
// upload root at a temp dir.
func SetupConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "test_secret"
	cfg.JWT.ExpirationHours = 1
	cfg.Upload.Path = t.TempDir()
	cfg.Upload.URLPrefix = "/images/"
	cfg.Upload.MaxUploadSizeMB = 10
	cfg.Upload.MaxBatchCount = 20
	cfg.Upload.AllowedMimePrefix = "image/"
	cfg.Storage.DefaultQuotaBytes = 1073741824
	config.SetForTest(cfg)
	return cfg
}

// MinimalPNG 返回带合法 PNG 头的最小文件内容
func MinimalPNG() []byte {
	return []byte{
		0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
		0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x02, 0x00, 0x00, 0x00,
	}
}

// PNGOfSize 返回指定总字节数的 PNG 内容（头部合法，余量填充）
func PNGOfSize(t *testing.T, size int) []byte {
	t.Helper()
	head := MinimalPNG()
	if size < len(head) {
		t.Fatalf("size %d smaller than png header", size)
	}
	data := make([]byte, size)
	copy(data, head)
	return data
}

// MustFileHeader 构造一个内存中的 multipart.FileHeader
func MustFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, filename))
	header.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024*1024)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	files := form.File["files"]
	if len(files) != 1 {
		t.Fatalf("expect 1 file header, got %d", len(files))
	}
	return files[0]
}
