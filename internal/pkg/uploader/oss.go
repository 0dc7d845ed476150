package uploader

import (
	"fmt"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"go.uber.org/zap"

	"xhs_spider/internal/pkg/config"
	"xhs_spider/pkg/logger"
)

// OSSUploader 把导出产物归档到阿里云 OSS，未启用时为空实现
type OSSUploader struct {
	bucket *oss.Bucket
	prefix string
}

// NewOSSUploader 按配置构建上传器，oss.enabled=false 时返回 nil
func NewOSSUploader(cfg config.OSSConfig) (*OSSUploader, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("初始化 OSS 客户端失败: %w", err)
	}
	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("获取 OSS bucket 失败: %w", err)
	}
	return &OSSUploader{bucket: bucket, prefix: cfg.Prefix}, nil
}

// UploadFile 上传单个本地文件，返回对象键
func (u *OSSUploader) UploadFile(localPath string) (string, error) {
	if u == nil {
		return "", nil
	}
	key := filepath.ToSlash(filepath.Join(u.prefix, filepath.Base(localPath)))
	if err := u.bucket.PutObjectFromFile(key, localPath); err != nil {
		return "", fmt.Errorf("上传 %s 失败: %w", localPath, err)
	}
	logger.Log.Info("产物已归档到 OSS",
		zap.String("local", localPath),
		zap.String("key", key))
	return key, nil
}
