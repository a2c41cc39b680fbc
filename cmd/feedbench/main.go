// feedbench 压测关注写入、关注流查询与首页整页缓存。
//
// 环境变量：N 用户数，CONC 并发数，PAGE 每页条数，REDIS_ADDR 为空时使用进程内 miniredis。
package main

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/app"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func main() {
	N := envInt("N", 2000)
	CONC := envInt("CONC", 4)
	PAGE := envInt("PAGE", 10)

	cfg := must(config.Load())
	cfg.Pagination.PageSize = PAGE
	cfg.Media.Root = must(os.MkdirTemp("", "feedbench-media"))
	defer os.RemoveAll(cfg.Media.Root)

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		mr := must(miniredis.Run())
		defer mr.Close()
		addr = mr.Addr()
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	db := must(database.InitDB(cfg))
	a := must(app.New(cfg, db, app.Options{Redis: rdb}))
	ctx := context.Background()

	// u0 为大 V，其余用户关注 u0，u0 发 PAGE*5 篇帖子
	users := make([]model.User, N+1)
	for i := range users {
		users[i] = model.User{Username: fmt.Sprintf("bench_%d_%d", time.Now().UnixNano(), i), Password: "p"}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		panic(err)
	}
	celeb := users[0]
	for i := 0; i < PAGE*5; i++ {
		if _, err := a.Posts.Create(ctx, celeb.ID, servicePost(i)); err != nil {
			panic(err)
		}
	}

	// 并发关注
	feed := make(chan int, N)
	for i := 1; i <= N; i++ {
		feed <- i
	}
	close(feed)
	var mu sync.Mutex
	followRecs := make([]time.Duration, 0, N)
	var wg sync.WaitGroup
	t0 := time.Now()
	for w := 0; w < CONC; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range feed {
				st := time.Now()
				_ = a.Relations.Follow(ctx, users[i].ID, celeb.ID)
				d := time.Since(st)
				mu.Lock()
				followRecs = append(followRecs, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	followDur := time.Since(t0)

	// 关注流查询
	feedRecs := make([]time.Duration, 0, 200)
	for i := 0; i < 200; i++ {
		u := users[1+i%N]
		st := time.Now()
		if _, err := a.Posts.ListFollowed(ctx, u.ID, 1+i%5); err != nil {
			panic(err)
		}
		feedRecs = append(feedRecs, time.Since(st))
	}

	// 首页：无缓存与缓存命中
	index := func() time.Duration {
		st := time.Now()
		w := httptest.NewRecorder()
		a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			panic(fmt.Sprintf("index status %d", w.Code))
		}
		return time.Since(st)
	}
	missRecs := make([]time.Duration, 0, 100)
	hitRecs := make([]time.Duration, 0, 100)
	for i := 0; i < 100; i++ {
		_ = a.PageCache.Clear(ctx)
		missRecs = append(missRecs, index())
		hitRecs = append(hitRecs, index())
	}
	stats := a.PageCache.Stats()

	fmt.Printf("N=%d, CONC=%d, PAGE=%d\n", N, CONC, PAGE)
	fmt.Printf("Follow total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		followDur, followDur/time.Duration(N), pct(followRecs, 0.50), pct(followRecs, 0.95), pct(followRecs, 0.99))
	fmt.Printf("Follow feed page: p50: %v, p95: %v, p99: %v\n", pct(feedRecs, 0.50), pct(feedRecs, 0.95), pct(feedRecs, 0.99))
	fmt.Printf("Index uncached: p50: %v, p95: %v\n", pct(missRecs, 0.50), pct(missRecs, 0.95))
	fmt.Printf("Index cached:   p50: %v, p95: %v\n", pct(hitRecs, 0.50), pct(hitRecs, 0.95))
	fmt.Printf("Page cache: hits=%d misses=%d writes=%d\n", stats.Hits, stats.Misses, stats.Writes)
}

func servicePost(i int) service.PostInput {
	return service.PostInput{Text: fmt.Sprintf("bench post #%d", i)}
}
