package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// movieIDs 压测用的电影 ID 池
var movieIDs = []int{76600, 19995, 572802}

type task struct {
	name   string
	weight int
	do     func(c *client) error
}

// tasks 压测任务及权重（与线上访问比例一致）
var tasks = []task{
	{name: "popular", weight: 3, do: func(c *client) error {
		return c.get("/api/movies/popular?page=1")
	}},
	{name: "movie", weight: 2, do: func(c *client) error {
		return c.get(fmt.Sprintf("/api/movies/%d", pickMovie()))
	}},
	{name: "search", weight: 2, do: func(c *client) error {
		return c.get("/api/movies/search?query=avatar")
	}},
	{name: "reviews", weight: 1, do: func(c *client) error {
		return c.get(fmt.Sprintf("/api/reviews/%d", pickMovie()))
	}},
}

func pickMovie() int {
	return movieIDs[rand.Intn(len(movieIDs))]
}

// stat 单个任务的累计指标
type stat struct {
	requests int
	errors   int
	total    time.Duration
}

type reporter struct {
	mu    sync.Mutex
	stats map[string]*stat
}

func newReporter() *reporter {
	return &reporter{stats: make(map[string]*stat)}
}

func (r *reporter) record(name string, latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stats[name]
	if !ok {
		s = &stat{}
		r.stats[name] = s
	}
	s.requests++
	s.total += latency
	if err != nil {
		s.errors++
	}
}

func (r *reporter) print() {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Printf("%-10s %10s %10s %12s\n", "task", "requests", "errors", "mean")
	for _, t := range tasks {
		s, ok := r.stats[t.name]
		if !ok || s.requests == 0 {
			continue
		}
		mean := s.total / time.Duration(s.requests)
		fmt.Printf("%-10s %10d %10d %12v\n", t.name, s.requests, s.errors, mean.Round(time.Millisecond))
	}
}

type client struct {
	base  string
	http  *http.Client
	token string
}

func (c *client) get(path string) error {
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return nil
}

// login 登录获取令牌，失败时匿名压测（公开接口不需要令牌）
func (c *client) login(username, password string) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := c.http.Post(c.base+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		c.token = result.AccessToken
	}
}

func main() {
	base := flag.String("base", "http://localhost:8000", "服务地址")
	users := flag.Int("users", 10, "并发模拟用户数")
	duration := flag.Duration("duration", time.Minute, "压测时长")
	username := flag.String("username", "test", "登录用户名")
	password := flag.String("password", "123456", "登录密码")
	flag.Parse()

	// 按权重展开任务选择池
	var pool []task
	for _, t := range tasks {
		for i := 0; i < t.weight; i++ {
			pool = append(pool, t)
		}
	}

	rep := newReporter()
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Printf("压测开始: %d 用户, %v, 目标 %s", *users, *duration, *base)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < *users; i++ {
		g.Go(func() error {
			c := &client{
				base: *base,
				http: &http.Client{Timeout: 30 * time.Second},
			}
			c.login(*username, *password)

			for {
				t := pool[rand.Intn(len(pool))]
				start := time.Now()
				err := t.do(c)
				rep.record(t.name, time.Since(start), err)

				// 模拟用户思考时间 1-3 秒
				wait := time.Duration(1000+rand.Intn(2000)) * time.Millisecond
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(wait):
				}
			}
		})
	}

	g.Wait()
	log.Println("压测结束")
	rep.print()
}
