package service

import (
	"encoding/json"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// FixtureStore 离线模式的静态 JSON 响应目录。
// 文件内容不会变化，解析结果用 LRU 缓存避免重复读盘。
type FixtureStore struct {
	dir   string
	cache *lru.Cache[string, json.RawMessage]
}

// NewFixtureStore 创建固定响应存储，size 是最大缓存条数
func NewFixtureStore(dir string) *FixtureStore {
	// lru.New 是线程安全的
	c, _ := lru.New[string, json.RawMessage](128)
	return &FixtureStore{
		dir:   dir,
		cache: c,
	}
}

// Load 按文件名读取固定响应，文件不存在或不可解析返回 false
func (s *FixtureStore) Load(name string) (json.RawMessage, bool) {
	if data, ok := s.cache.Get(name); ok {
		return data, true
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, false
	}
	if !json.Valid(raw) {
		return nil, false
	}

	data := json.RawMessage(raw)
	s.cache.Add(name, data)
	return data, true
}
