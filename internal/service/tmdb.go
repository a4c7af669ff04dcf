package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/user/watchcinema/internal/config"
)

// TMDBService 电影元数据网关：对上游目录接口做无状态透传。
// 开启离线模式时，popular/search/details 改由本地固定响应提供；
// genre/videos 始终请求上游（沿用上游服务的历史行为，见 DESIGN.md）。
type TMDBService struct {
	cfg      *config.Config
	client   *http.Client
	fixtures *FixtureStore
	group    singleflight.Group
}

func NewTMDBService(cfg *config.Config) *TMDBService {
	return &TMDBService{
		cfg:      cfg,
		client:   &http.Client{Timeout: 15 * time.Second},
		fixtures: NewFixtureStore(cfg.TMDBCacheDir),
	}
}

// Popular 热门电影列表
func (s *TMDBService) Popular(page int) (json.RawMessage, error) {
	if s.cfg.UseTMDBCache {
		return s.loadFixture(fmt.Sprintf("popular_page_%d.json", page)), nil
	}
	return s.get("/movie/popular", url.Values{"page": {strconv.Itoa(page)}})
}

// Search 按标题搜索电影
func (s *TMDBService) Search(query string, page int) (json.RawMessage, error) {
	if s.cfg.UseTMDBCache {
		return s.loadFixture("search_avatar.json"), nil
	}
	return s.get("/search/movie", url.Values{
		"query": {query},
		"page":  {strconv.Itoa(page)},
	})
}

// ByGenre 按类型筛选电影
func (s *TMDBService) ByGenre(genreID, page int) (json.RawMessage, error) {
	return s.get("/discover/movie", url.Values{
		"page":        {strconv.Itoa(page)},
		"with_genres": {strconv.Itoa(genreID)},
		"sort_by":     {"popularity.desc"},
	})
}

// Details 电影详情
func (s *TMDBService) Details(movieID int) (json.RawMessage, error) {
	if s.cfg.UseTMDBCache {
		if data, ok := s.fixtures.Load(fmt.Sprintf("movie_%d.json", movieID)); ok {
			return data, nil
		}
		return json.RawMessage(`{"error": "not found"}`), nil
	}
	return s.get(fmt.Sprintf("/movie/%d", movieID), url.Values{})
}

// Videos 电影预告片与视频列表
func (s *TMDBService) Videos(movieID int) (json.RawMessage, error) {
	return s.get(fmt.Sprintf("/movie/%d/videos", movieID), url.Values{})
}

// loadFixture 读固定响应，缺失时返回 null（与上游服务离线行为一致）
func (s *TMDBService) loadFixture(name string) json.RawMessage {
	if data, ok := s.fixtures.Load(name); ok {
		return data
	}
	return json.RawMessage("null")
}

// get 请求上游并原样返回响应体。
// 使用 singleflight 合并并发的相同请求。
func (s *TMDBService) get(path string, params url.Values) (json.RawMessage, error) {
	params.Set("api_key", s.cfg.TMDBAPIKey)
	params.Set("language", s.cfg.TMDBLanguage)
	requestURL := s.cfg.TMDBBaseURL + path + "?" + params.Encode()

	val, err, _ := s.group.Do(requestURL, func() (interface{}, error) {
		return s.fetch(requestURL)
	})
	if err != nil {
		return nil, err
	}
	return val.(json.RawMessage), nil
}

func (s *TMDBService) fetch(requestURL string) (json.RawMessage, error) {
	resp, err := s.client.Get(requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return nil, fmt.Errorf("upstream returned %d: %s", resp.StatusCode, detail)
	}

	return json.RawMessage(body), nil
}
