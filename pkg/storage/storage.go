package storage

import (
	"context"
	"io"
)

// Storage 上传文件的存储后端
type Storage interface {
	// Write 以 key 保存 r 的内容
	Write(ctx context.Context, key string, r io.Reader) error
	// Read 调用方负责关闭返回的 ReadCloser
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
