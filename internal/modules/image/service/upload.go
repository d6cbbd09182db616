package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"pocket-pic-server/internal/config"
	"pocket-pic-server/internal/model"
	moduledto "pocket-pic-server/internal/modules/image/dto"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/utils"
	"time"
)

type IngestRequest struct {
	UserID      uint
	CategoryID  uint
	Files       []*multipart.FileHeader
	Tags        []string
	Alt         string
	Description string
}

// batchFile 校验通过的待处理文件
type batchFile struct {
	header *multipart.FileHeader
	mime   string
}

// Ingest 处理一次批量上传。
//
// 批次级校验（分类、类型、大小、配额）在任何文件落盘前完成，失败即整批拒绝、
// 无任何副作用。校验通过后逐个文件处理：写文件 → 落库（processing）并记账 →
// 置为 completed。单个文件失败不影响批内其他文件，失败文件的补偿清理
// （删除已写入的文件）必须执行并上报结果后才计入 failures。
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*moduledto.BatchResult, error) {
	files, err := s.validateBatch(req)
	if err != nil {
		return nil, err
	}

	tags := utils.NormalizeTags(req.Tags)
	urlPrefix := config.Get().Upload.URLPrefix
	result := &moduledto.BatchResult{
		Completed: []moduledto.ImageView{},
		Failures:  []moduledto.FileFailure{},
	}

	for _, f := range files {
		// 请求超时/取消后停止处理。未处理的文件既不算成功也不算失败，
		// 调用方需按“状态未知”处理并重新查询。
		if ctx.Err() != nil {
			log.Printf("Ingest interrupted: %v, %d file(s) unprocessed\n", ctx.Err(), len(files)-len(result.Completed)-len(result.Failures))
			break
		}

		image, failReason := s.ingestOne(f, req, tags)
		if failReason != "" {
			result.Failures = append(result.Failures, moduledto.FileFailure{
				FileName: f.header.Filename,
				Reason:   failReason,
			})
			continue
		}
		result.Completed = append(result.Completed, moduledto.NewImageView(image, urlPrefix))
	}

	return result, nil
}

// validateBatch 批次级校验。任何一项不通过都在任何 I/O 之前拒绝整批。
// 类型与大小采用整批拒绝策略，与配额检查保持一致（而非静默丢弃个别文件）。
func (s *Service) validateBatch(req IngestRequest) ([]batchFile, error) {
	if len(req.Files) == 0 {
		return nil, platformservice.NewValidationError("请选择要上传的文件")
	}

	maxBatch := s.MaxBatchCount()
	if len(req.Files) > maxBatch {
		return nil, platformservice.NewValidationError(fmt.Sprintf("单次最多上传 %d 个文件", maxBatch))
	}

	if _, err := s.categoryStore.FindByID(req.CategoryID); err != nil {
		return nil, platformservice.NewValidationError("分类不存在")
	}

	maxBytes := s.MaxUploadBytes()
	mimePrefix := s.AllowedMimePrefix()

	files := make([]batchFile, 0, len(req.Files))
	var totalSize int64
	for _, fh := range req.Files {
		if fh.Size > maxBytes {
			return nil, platformservice.NewValidationError(
				fmt.Sprintf("文件 %s 超过大小上限 %dMB", fh.Filename, maxBytes/1024/1024))
		}

		mime, err := s.detectMime(fh)
		if err != nil {
			log.Printf("Detect mime error: %v, file: %s\n", err, fh.Filename)
			return nil, platformservice.NewInternalError("无法读取上传文件")
		}
		if len(mime) < len(mimePrefix) || mime[:len(mimePrefix)] != mimePrefix {
			return nil, platformservice.NewValidationError(
				fmt.Sprintf("不支持的文件类型: %s (%s)", fh.Filename, mime))
		}

		totalSize += fh.Size
		files = append(files, batchFile{header: fh, mime: mime})
	}

	if err := s.CheckFits(req.UserID, totalSize); err != nil {
		return nil, err
	}

	return files, nil
}

func (s *Service) detectMime(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()
	return utils.DetectMimeType(src)
}

// ingestOne 处理单个文件。返回的 failReason 非空表示该文件失败。
func (s *Service) ingestOne(f batchFile, req IngestRequest, tags []string) (*model.Image, string) {
	src, err := f.header.Open()
	if err != nil {
		log.Printf("File open error: %v, file: %s\n", err, f.header.Filename)
		return nil, "无法读取上传文件"
	}
	defer func() { _ = src.Close() }()

	// 1. 写入文件
	put, err := s.blobStore.Put(src, f.header.Filename)
	if err != nil {
		log.Printf("Blob write error: %v, file: %s\n", err, f.header.Filename)
		return nil, "文件保存失败"
	}

	// 2. 创建记录（processing）并在同一事务内记账
	image := &model.Image{
		OriginalName: f.header.Filename,
		StoredName:   put.StoredName,
		Path:         put.Locator,
		MimeType:     f.mime,
		Size:         put.Size,
		Tags:         tags,
		Alt:          req.Alt,
		Description:  req.Description,
		UploadStatus: model.UploadStatusProcessing,
		UploadedAt:   time.Now().Unix(),
		CategoryID:   req.CategoryID,
		UserID:       req.UserID,
	}
	if err := s.imageStore.CreateWithAccounting(image); err != nil {
		log.Printf("Create image record error: %v, file: %s\n", err, f.header.Filename)
		s.cleanupBlob(put.Locator)
		return nil, "数据库记录失败"
	}

	// 3. 文件与记录都已确认，置为 completed
	if err := s.imageStore.MarkCompleted(image.ID); err != nil {
		log.Printf("Mark completed error: %v, image id: %d\n", err, image.ID)
		// 回退记录与记账，再清理文件
		if _, derr := s.imageStore.DeleteWithAccounting(image); derr != nil {
			log.Printf("[不一致] 回退图片记录失败: %v, image id: %d\n", derr, image.ID)
		}
		s.cleanupBlob(put.Locator)
		return nil, "数据库记录失败"
	}
	image.UploadStatus = model.UploadStatusCompleted

	return image, ""
}

// cleanupBlob 补偿删除已写入的文件，并上报清理结果。
// 清理失败只记日志不改变文件的失败状态，但遗留的孤儿文件
// 必须可被日志与离线审计发现，不允许静默吞掉。
func (s *Service) cleanupBlob(locator string) {
	removed, err := s.blobStore.Delete(locator)
	if err != nil {
		log.Printf("[清理失败] 补偿删除失败，遗留孤儿文件: %s, err: %v\n", locator, err)
		return
	}
	if !removed {
		log.Printf("补偿删除时文件已不存在: %s\n", locator)
	}
}
