// Нагрузочный генератор для потока заказов: сеет клиента и товары через
// API, затем параллельно размещает и читает заказы, печатая JSON-отчёт
// с латентностями.
//
// Генератор рассчитан на пустое хранилище: API создания не возвращает
// идентификаторы справочных сущностей, поэтому они выводятся из порядка
// вставки.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

type loadMode string

const (
	modePlace    loadMode = "place"
	modePlaceGet loadMode = "place-get"
)

type config struct {
	baseURL     string
	total       int
	duration    time.Duration
	concurrency int
	timeout     time.Duration
	mode        loadMode
	maxItems    int
	products    int
	outputPath  string
}

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type methodReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Statuses  map[string]int64 `json:"statuses"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

type report struct {
	StartedAt         time.Time               `json:"started_at"`
	DurationSeconds   float64                 `json:"duration_seconds"`
	TotalScenarios    int64                   `json:"total_scenarios"`
	SuccessScenarios  int64                   `json:"success_scenarios"`
	FailedScenarios   int64                   `json:"failed_scenarios"`
	ErrorRate         float64                 `json:"error_rate"`
	RPS               float64                 `json:"rps"`
	ScenarioLatencyMs latencySummary          `json:"scenario_latency_ms"`
	Methods           map[string]methodReport `json:"methods"`
}

type methodStats struct {
	calls     int64
	success   int64
	failed    int64
	statuses  map[string]int64
	latencies []float64
}

type collector struct {
	mu      sync.Mutex
	methods map[string]*methodStats
}

func newCollector() *collector {
	return &collector{methods: make(map[string]*methodStats)}
}

func (c *collector) record(method string, latency time.Duration, status int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.methods[method]
	if !ok {
		stats = &methodStats{statuses: make(map[string]int64)}
		c.methods[method] = stats
	}

	stats.calls++
	key := "transport_error"
	if err == nil {
		key = fmt.Sprintf("%d", status)
	}
	stats.statuses[key]++

	if err == nil && status < 400 {
		stats.success++
	} else {
		stats.failed++
	}
	stats.latencies = append(stats.latencies, float64(latency.Milliseconds()))
}

func summarize(latencies []float64) latencySummary {
	if len(latencies) == 0 {
		return latencySummary{}
	}
	sorted := make([]float64, len(latencies))
	copy(sorted, latencies)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	percentile := func(p float64) float64 {
		idx := int(math.Ceil(p*float64(len(sorted)))) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}

	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(0.50),
		P95: percentile(0.95),
		P99: percentile(0.99),
	}
}

type client struct {
	http    *http.Client
	baseURL string
}

func (c *client) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *client) get(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

type orderPlaced struct {
	OrderID int64 `json:"order_id"`
}

// seed создаёт клиента и products товаров, возвращая их идентификаторы.
// Идентификаторы последовательны (BIGSERIAL/счётчик) и в пустом
// хранилище начинаются с единицы.
func seed(ctx context.Context, c *client, products int) (int64, []int64, error) {
	status, err := c.postJSON(ctx, "/customer", map[string]string{
		"name":         gofakeit.Name(),
		"email":        uuid.NewString() + "@loadtest.local",
		"phone_number": gofakeit.Phone(),
	}, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("seed customer: %w", err)
	}
	if status != http.StatusCreated {
		return 0, nil, fmt.Errorf("seed customer: unexpected status %d", status)
	}

	productIDs := make([]int64, 0, products)
	for i := 0; i < products; i++ {
		status, err := c.postJSON(ctx, "/product", map[string]any{
			"name":  gofakeit.ProductName(),
			"price": gofakeit.Price(0.5, 100),
		}, nil)
		if err != nil {
			return 0, nil, fmt.Errorf("seed product: %w", err)
		}
		if status != http.StatusCreated {
			return 0, nil, fmt.Errorf("seed product: unexpected status %d", status)
		}
		productIDs = append(productIDs, int64(i+1))
	}

	return 1, productIDs, nil
}

func runScenario(ctx context.Context, c *client, cfg config, customerID int64, productIDs []int64, stats *collector) bool {
	items := make([]map[string]any, 0, cfg.maxItems)
	count := 1 + rand.Intn(cfg.maxItems)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"product_id": productIDs[rand.Intn(len(productIDs))],
			"quantity":   1 + rand.Intn(5),
		})
	}

	var placed orderPlaced
	start := time.Now()
	status, err := c.postJSON(ctx, "/order", map[string]any{
		"order_date":  time.Now().UTC().Format("2006-01-02"),
		"customer_id": customerID,
		"items":       items,
	}, &placed)
	stats.record("POST /order", time.Since(start), status, err)
	if err != nil || status != http.StatusCreated {
		return false
	}

	if cfg.mode == modePlaceGet {
		start = time.Now()
		status, err = c.get(ctx, fmt.Sprintf("/order/%d", placed.OrderID))
		stats.record("GET /order/{id}", time.Since(start), status, err)
		if err != nil || status != http.StatusOK {
			return false
		}
	}

	return true
}

func main() {
	cfg := config{}
	var mode string
	flag.StringVar(&cfg.baseURL, "url", "http://localhost:8080", "base URL of the API server")
	flag.IntVar(&cfg.total, "total", 100, "total scenarios to run (ignored when -duration is set)")
	flag.DurationVar(&cfg.duration, "duration", 0, "run for a fixed duration instead of a fixed total")
	flag.IntVar(&cfg.concurrency, "concurrency", 8, "number of concurrent workers")
	flag.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "per-request timeout")
	flag.StringVar(&mode, "mode", string(modePlaceGet), "scenario mode: place|place-get")
	flag.IntVar(&cfg.maxItems, "max-items", 3, "max items per order")
	flag.IntVar(&cfg.products, "products", 10, "number of products to seed")
	flag.StringVar(&cfg.outputPath, "output", "", "write JSON report to file (default stdout)")
	flag.Parse()

	cfg.mode = loadMode(mode)
	if cfg.mode != modePlace && cfg.mode != modePlaceGet {
		fmt.Fprintf(os.Stderr, "unsupported mode: %s\n", mode)
		os.Exit(1)
	}

	httpClient := &client{
		http:    &http.Client{Timeout: cfg.timeout},
		baseURL: cfg.baseURL,
	}

	ctx := context.Background()
	customerID, productIDs, err := seed(ctx, httpClient, cfg.products)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	stats := newCollector()
	var (
		total, success, failed int64
		scenarioLatencies      []float64
		latMu                  sync.Mutex
	)

	deadline := time.Time{}
	if cfg.duration > 0 {
		deadline = time.Now().Add(cfg.duration)
	}

	startedAt := time.Now()
	var wg sync.WaitGroup
	work := make(chan struct{})

	for i := 0; i < cfg.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range work {
				start := time.Now()
				ok := runScenario(ctx, httpClient, cfg, customerID, productIDs, stats)
				elapsed := time.Since(start)

				atomic.AddInt64(&total, 1)
				if ok {
					atomic.AddInt64(&success, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
				latMu.Lock()
				scenarioLatencies = append(scenarioLatencies, float64(elapsed.Milliseconds()))
				latMu.Unlock()
			}
		}()
	}

	if cfg.duration > 0 {
		for time.Now().Before(deadline) {
			work <- struct{}{}
		}
	} else {
		for i := 0; i < cfg.total; i++ {
			work <- struct{}{}
		}
	}
	close(work)
	wg.Wait()

	elapsed := time.Since(startedAt)
	methods := make(map[string]methodReport, len(stats.methods))
	for name, m := range stats.methods {
		errorRate := 0.0
		if m.calls > 0 {
			errorRate = float64(m.failed) / float64(m.calls)
		}
		methods[name] = methodReport{
			Calls:     m.calls,
			Success:   m.success,
			Failed:    m.failed,
			ErrorRate: errorRate,
			Statuses:  m.statuses,
			LatencyMs: summarize(m.latencies),
		}
	}

	errorRate := 0.0
	if total > 0 {
		errorRate = float64(failed) / float64(total)
	}
	result := report{
		StartedAt:         startedAt,
		DurationSeconds:   elapsed.Seconds(),
		TotalScenarios:    total,
		SuccessScenarios:  success,
		FailedScenarios:   failed,
		ErrorRate:         errorRate,
		RPS:               float64(total) / elapsed.Seconds(),
		ScenarioLatencyMs: summarize(scenarioLatencies),
		Methods:           methods,
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal report: %v\n", err)
		os.Exit(1)
	}

	if cfg.outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.outputPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(cfg.outputPath, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write report: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(out))
	}
}
