// Command loadtest drives the stored-record endpoints of a running server.
// Scrape endpoints are left out so the source site is never hammered.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

var slugs = []string{"sierra-nevada", "candanchu", "boi-taull", "valdelinares", "loadtest-a", "loadtest-b"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type runner struct {
	baseURL string
	workers int
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8080", "server base URL")
	workers := flag.Int("workers", 20, "concurrent workers")
	duration := flag.Duration("duration", 10*time.Second, "duration of each phase")
	flag.Parse()

	r := &runner{baseURL: strings.TrimRight(*baseURL, "/"), workers: *workers}

	fmt.Println("=== SnowReport Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", r.baseURL, r.workers, *duration)

	fmt.Print("Waiting for server... ")
	if !r.waitHealthy(30) {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Writes (POST /api/estaciones) ---")
	r.runPhase(*duration, r.postRecord)

	fmt.Println("\n--- Phase 2: Mixed (20% write, 80% read) ---")
	r.runPhase(*duration, func(rng *rand.Rand) result {
		switch p := rng.Float64(); {
		case p < 0.20:
			return r.postRecord(rng)
		case p < 0.60:
			return r.getOne(rng)
		case p < 0.80:
			return r.getBySlugs(rng)
		default:
			return r.getLatest(rng)
		}
	})
}

func (r *runner) waitHealthy(tries int) bool {
	for range tries {
		resp, err := httpClient.Get(r.baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func (r *runner) runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stopped := atomic.NewBool(false)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for !stopped.Load() {
				results <- workFn(rng)
			}
		}(rand.Int63() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for res := range results {
			s, ok := all[res.endpoint]
			if !ok {
				s = &stats{}
				all[res.endpoint] = s
			}
			s.count++
			if res.err {
				s.errors++
			}
			s.latencies = append(s.latencies, res.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	stopped.Store(true)
	wg.Wait()
	close(results)
	<-done

	printResults(all, duration)
}

func (r *runner) postRecord(rng *rand.Rand) result {
	total := rng.Intn(30) + 5
	body, _ := json.Marshal(map[string]any{
		"slug":       slugs[rng.Intn(len(slugs))],
		"remontes":   fmt.Sprintf("%d/%d", rng.Intn(total+1), total),
		"kilometros": fmt.Sprintf("%d/%d", rng.Intn(80), 80),
		"nieve":      fmt.Sprintf("%d cm", rng.Intn(200)),
	})
	req, _ := http.NewRequest(http.MethodPost, r.baseURL+"/api/estaciones", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do("POST /api/estaciones", req, http.StatusCreated)
}

func (r *runner) getOne(rng *rand.Rand) result {
	req, _ := http.NewRequest(http.MethodGet, r.baseURL+"/api/estacion-db/"+slugs[rng.Intn(len(slugs))], nil)
	return do("GET /api/estacion-db", req, http.StatusOK)
}

func (r *runner) getBySlugs(rng *rand.Rand) result {
	a, b := slugs[rng.Intn(len(slugs))], slugs[rng.Intn(len(slugs))]
	req, _ := http.NewRequest(http.MethodGet, r.baseURL+"/api/estaciones-db?slugs="+a+","+b, nil)
	return do("GET /api/estaciones-db?slugs", req, http.StatusOK)
}

func (r *runner) getLatest(rng *rand.Rand) result {
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/api/estaciones-db?limit=%d", r.baseURL, rng.Intn(100)+1), nil)
	return do("GET /api/estaciones-db?limit", req, http.StatusOK)
}

func do(endpoint string, req *http.Request, want int) result {
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func printResults(all map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-30s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 80))

	for _, ep := range endpoints {
		s := all[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-30s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 80))
	if totalOps == 0 {
		fmt.Println("  No requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
