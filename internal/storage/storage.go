package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStore 图片对象存储接口，返回存储对象名
// 完整访问 url 由调用方拼接配置的前缀得到。
type ObjectStore interface {
	Store(ctx context.Context, data []byte) (name string, err error)
}

// LocalStore 本地磁盘实现，对象名为随机 uuid
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Store(_ context.Context, data []byte) (string, error) {
	name := uuid.New().String()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}
