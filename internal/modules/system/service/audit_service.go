package service

import (
	"log"
	moduledto "pocket-pic-server/internal/modules/system/dto"
	platformservice "pocket-pic-server/internal/platform/service"
)

// AuditOrphans 比对文件存储与图片记录，找出两边的孤儿。
//
// 上传/删除路径上的补偿清理失败会遗留孤儿文件；崩溃也可能留下
// 指向缺失文件的记录。这里做低频离线比对而非两阶段提交，
// 只上报不删除，处置交给管理员。
func (s *Service) AuditOrphans() (*moduledto.AuditReport, error) {
	images, err := s.imageStore.FindAll()
	if err != nil {
		log.Printf("Audit load records error: %v\n", err)
		return nil, platformservice.NewInternalError("审计失败: 无法读取图片记录")
	}

	recorded := make(map[string]bool, len(images))
	for i := range images {
		recorded[images[i].Path] = true
	}

	report := &moduledto.AuditReport{
		OrphanBlobs:    []string{},
		OrphanRecords:  []uint{},
		CheckedRecords: len(images),
	}

	err = s.blobStore.Walk(func(locator string, size int64) error {
		report.CheckedBlobs++
		if !recorded[locator] {
			report.OrphanBlobs = append(report.OrphanBlobs, locator)
		}
		return nil
	})
	if err != nil {
		log.Printf("Audit walk blobs error: %v\n", err)
		return nil, platformservice.NewInternalError("审计失败: 无法遍历存储目录")
	}

	for i := range images {
		if !s.blobStore.Exists(images[i].Path) {
			report.OrphanRecords = append(report.OrphanRecords, images[i].ID)
		}
	}

	if len(report.OrphanBlobs) > 0 || len(report.OrphanRecords) > 0 {
		log.Printf("[审计] 发现孤儿文件 %d 个，孤儿记录 %d 条\n", len(report.OrphanBlobs), len(report.OrphanRecords))
	}

	return report, nil
}
