package store

import (
	"context"
	"sync"
)

// MemoryStore はメモリ上のストア実装。テストおよびDBなしでの起動確認用。
// プロセス終了とともに内容は失われる。
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore はMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

// Get は指定キーの値を返す。キーが存在しない場合はErrNotFoundを返す。
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	// 呼び出し側の変更から保護するためコピーを返す
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set は指定キーに値を書き込む。
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Remove は指定キーを削除する。
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
