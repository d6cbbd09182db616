package blob

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"pocket-pic-server/internal/utils"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PutResult 描述一次成功写入的产物。
type PutResult struct {
	Locator    string // 相对存储根目录的 slash 路径，作为记录中的定位符
	StoredName string // 存储文件名 (uuid + 原始扩展名)
	Size       int64  // 实际写入的字节数
}

// Store 二进制文件存储。只负责文件 I/O，不包含业务逻辑。
type Store interface {
	// Put 写入文件并返回定位符。写入是全有或全无的：
	// 任何失败都不会留下对外可见的半成品文件。
	Put(src io.Reader, originalName string) (*PutResult, error)
	// Delete 删除定位符对应的文件。幂等：
	// removed=true 表示本次确实删除了文件；
	// removed=false 且 err=nil 表示文件本就不存在（清理场景视为已完成）。
	Delete(locator string) (removed bool, err error)
	// Exists 判断定位符对应的文件是否存在且可读。
	Exists(locator string) bool
	// Walk 遍历存储中的所有文件，供孤儿审计使用。
	Walk(fn func(locator string, size int64) error) error
	// Root 存储根目录的绝对路径。
	Root() string
}

// LocalStore 本地磁盘存储，按日期分目录存放。
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("存储根目录解析失败: %w", err)
	}
	// 根目录节点本身不允许是符号链接（防止根目录直接指向外部路径）。
	if err := utils.EnsurePathNotSymlink(rootAbs); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(rootAbs, 0755); err != nil {
		return nil, fmt.Errorf("无法创建存储根目录: %w", err)
	}
	return &LocalStore{root: rootAbs}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(src io.Reader, originalName string) (*PutResult, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	// 按日期分目录，避免单目录文件过多
	now := time.Now()
	datePath := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))

	fullDir, err := utils.SecureJoin(s.root, datePath)
	if err != nil {
		return nil, fmt.Errorf("非法存储目录: %w", err)
	}
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return nil, fmt.Errorf("无法创建存储目录: %w", err)
	}

	// uuid 保证存储名不与任何已有文件冲突
	storedName := uuid.New().String() + ext
	dst := filepath.Join(fullDir, storedName)

	// 先写临时文件，成功后再原子改名，保证不会留下可见的半成品
	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("无法创建文件: %w", err)
	}

	written, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("文件保存失败: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("文件保存失败: %w", err)
	}

	return &PutResult{
		Locator:    filepath.ToSlash(filepath.Join(datePath, storedName)),
		StoredName: storedName,
		Size:       written,
	}, nil
}

func (s *LocalStore) Delete(locator string) (bool, error) {
	fullPath, err := utils.SecureJoin(s.root, filepath.FromSlash(locator))
	if err != nil {
		return false, fmt.Errorf("非法定位符: %w", err)
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			// 已不存在，清理语义下不算失败，但与“成功删除”区分上报
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *LocalStore) Exists(locator string) bool {
	fullPath, err := utils.SecureJoin(s.root, filepath.FromSlash(locator))
	if err != nil {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && info.Mode().IsRegular()
}

func (s *LocalStore) Walk(fn func(locator string, size int64) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// 残留的临时文件不属于有效内容
		if strings.HasSuffix(d.Name(), ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info.Size())
	})
}
