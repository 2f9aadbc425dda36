// Command loadgen drives synthetic traffic against a running backend.
// It records sales and prices carts for the IDs it has already created,
// harvesting response IDs into a parameter pool so later requests can
// reference earlier entities the way real clients do.
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
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/editora/tools/loadgen/internal/pool"
)

var categories = []string{"BIBLES", "BOOKS", "DEVOTIONALS", "MUSIC"}

type generator struct {
	baseURL  string
	token    string
	tenantID string
	client   *http.Client
	pool     pool.ParameterPool
	rng      *rand.Rand

	requests atomic.Int64
	failures atomic.Int64
}

func main() {
	var (
		baseURL     string
		token       string
		tenantID    string
		workers     int
		duration    time.Duration
		rateLimit   time.Duration
		poolBackend string
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the backend")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated requests")
	flag.StringVar(&tenantID, "tenant", "", "Tenant ID (X-Tenant-ID header when the token carries none)")
	flag.IntVar(&workers, "workers", 4, "Number of concurrent workers")
	flag.DurationVar(&duration, "duration", time.Minute, "How long to run")
	flag.DurationVar(&rateLimit, "interval", 100*time.Millisecond, "Delay between requests per worker")
	flag.StringVar(&poolBackend, "pool", "sharded", "Parameter pool backend (simple, sharded)")
	flag.Parse()

	if token == "" {
		fmt.Fprintln(os.Stderr, "loadgen: -token is required")
		os.Exit(1)
	}

	cfg := pool.DefaultPoolConfig()
	var params pool.ParameterPool
	if poolBackend == "simple" {
		params = pool.NewSimpleParameterPool(cfg)
	} else {
		params = pool.NewShardedParameterPool(cfg)
	}
	defer params.Close()

	gen := &generator{
		baseURL:  baseURL,
		token:    token,
		tenantID: tenantID,
		client:   &http.Client{Timeout: 10 * time.Second},
		pool:     params,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	log.Printf("loadgen: %d workers against %s for %s", workers, baseURL, duration)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen.run(ctx, rateLimit)
		}()
	}
	wg.Wait()

	stats, _ := params.Stats(context.Background())
	log.Printf("loadgen: done. requests=%d failures=%d pool_hit_rate=%.1f%% pool_values=%d",
		gen.requests.Load(), gen.failures.Load(), stats.HitRate(), stats.TotalValues)
}

func (g *generator) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Weighted action mix: mostly quotes, some entity creation so
		// the pool keeps filling with fresh IDs.
		switch g.rng.Intn(10) {
		case 0:
			g.createCustomer(ctx)
		case 1:
			g.createVendor(ctx)
		case 2, 3:
			g.createSale(ctx)
		case 4, 5:
			g.shippingQuote(ctx)
		default:
			g.pricingQuote(ctx)
		}
	}
}

func (g *generator) createCustomer(ctx context.Context) {
	body := map[string]any{
		"name":    fmt.Sprintf("Livraria Carga %d", g.rng.Intn(1_000_000)),
		"channel": []string{"DIRECT", "RESELLER", "REPRESENTATIVE"}[g.rng.Intn(3)],
	}
	data, ok := g.post(ctx, "/api/v1/customers", body)
	if !ok {
		return
	}
	g.harvest(data, "id", pool.SemanticTypeCustomerID, "POST /api/v1/customers")
}

func (g *generator) createVendor(ctx context.Context) {
	body := map[string]any{
		"name": fmt.Sprintf("Vendedor Carga %d", g.rng.Intn(1_000_000)),
		"role": "VENDOR",
	}
	data, ok := g.post(ctx, "/api/v1/vendors", body)
	if !ok {
		return
	}
	g.harvest(data, "id", pool.SemanticTypeVendorID, "POST /api/v1/vendors")
}

func (g *generator) createSale(ctx context.Context) {
	customerID := g.draw(ctx, pool.SemanticTypeCustomerID)
	vendorID := g.draw(ctx, pool.SemanticTypeVendorID)
	if customerID == "" || vendorID == "" {
		return
	}

	body := map[string]any{
		"sale_number":  fmt.Sprintf("LG-%d-%d", time.Now().UnixNano(), g.rng.Intn(1000)),
		"customer_id":  customerID,
		"vendor_id":    vendorID,
		"items":        g.cartItems(),
		"installments": 1 + g.rng.Intn(6),
	}
	data, ok := g.post(ctx, "/api/v1/sales", body)
	if !ok {
		return
	}
	g.harvest(data, "id", pool.SemanticTypeSaleID, "POST /api/v1/sales")
}

func (g *generator) pricingQuote(ctx context.Context) {
	customerID := g.draw(ctx, pool.SemanticTypeCustomerID)
	if customerID == "" {
		return
	}
	body := map[string]any{
		"customer_id": customerID,
		"items":       g.cartItems(),
	}
	g.post(ctx, "/api/v1/pricing/quote", body)
}

func (g *generator) shippingQuote(ctx context.Context) {
	count := 1 + g.rng.Intn(4)
	items := make([]map[string]any, count)
	for i := range items {
		items[i] = map[string]any{
			"weight_kg": fmt.Sprintf("%.2f", 0.2+g.rng.Float64()*12),
			"quantity":  1 + g.rng.Intn(20),
		}
	}
	g.post(ctx, "/api/v1/shipping/quote", map[string]any{"items": items})
}

func (g *generator) cartItems() []map[string]any {
	count := 1 + g.rng.Intn(5)
	items := make([]map[string]any, count)
	for i := range items {
		items[i] = map[string]any{
			"product_id":   randomUUID(g.rng),
			"product_name": fmt.Sprintf("Titulo %d", g.rng.Intn(10_000)),
			"unit_price":   fmt.Sprintf("%.2f", 10+g.rng.Float64()*190),
			"quantity":     fmt.Sprintf("%d", 1+g.rng.Intn(10)),
			"category":     categories[g.rng.Intn(len(categories))],
			"promotional":  g.rng.Intn(10) == 0,
		}
	}
	return items
}

// post sends a request and returns the decoded data envelope
func (g *generator) post(ctx context.Context, path string, body any) (map[string]any, bool) {
	g.requests.Add(1)

	payload, err := json.Marshal(body)
	if err != nil {
		g.failures.Add(1)
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		g.failures.Add(1)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)
	if g.tenantID != "" {
		req.Header.Set("X-Tenant-ID", g.tenantID)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.failures.Add(1)
		return nil, false
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || resp.StatusCode >= 400 {
		g.failures.Add(1)
		return nil, false
	}

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || !envelope.Success {
		return nil, false
	}
	return envelope.Data, true
}

// harvest stores a response field in the parameter pool
func (g *generator) harvest(data map[string]any, field string, semanticType pool.SemanticType, endpoint string) {
	value, ok := data[field].(string)
	if !ok || value == "" {
		return
	}
	pv := pool.NewParameterValue(value, semanticType, 0).
		WithSource(endpoint, "$.data."+field)
	_, _ = g.pool.Add(context.Background(), pv)
}

// draw retrieves a random previously-harvested value
func (g *generator) draw(ctx context.Context, semanticType pool.SemanticType) string {
	pv, err := g.pool.GetRandom(ctx, semanticType)
	if err != nil || pv == nil {
		return ""
	}
	value, _ := pv.Value.(string)
	return value
}

func randomUUID(rng *rand.Rand) string {
	b := make([]byte, 16)
	rng.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
