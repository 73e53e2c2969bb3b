// Package rates obtiene y cachea la tasa de cambio oficial Bs/USD.
//
// La tasa se refresca en segundo plano con un intervalo configurable. La
// última tasa buena se guarda en memoria y, si hay Redis configurado, se
// espeja ahí para sobrevivir reinicios mientras la fuente esté caída.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/despensa-solidaria/pos-api/internal/application/sales"
	"github.com/despensa-solidaria/pos-api/pkg/logger"
)

var _ sales.RateProvider = (*BCVProvider)(nil)

const redisRateKey = "pos:rate:bcv"

// bcvResponse es el payload de ve.dolarapi.com para el dólar oficial.
type bcvResponse struct {
	Promedio           float64 `json:"promedio"`
	FechaActualizacion string  `json:"fechaActualizacion"`
}

// Config parámetros del proveedor.
type Config struct {
	SourceURL       string
	RefreshInterval time.Duration
	FallbackRate    decimal.Decimal
}

// BCVProvider consulta la tasa oficial y la mantiene en memoria.
type BCVProvider struct {
	cfg    Config
	client *http.Client
	rdb    *redis.Client // nil = sin espejo
	log    *logger.Logger

	mu        sync.RWMutex
	rate      decimal.Decimal
	fetchedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewBCVProvider construye el proveedor. rdb puede ser nil.
func NewBCVProvider(cfg Config, rdb *redis.Client, log *logger.Logger) *BCVProvider {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	return &BCVProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		rdb:    rdb,
		log:    log,
	}
}

// Start hace un fetch inicial (con Redis como respaldo si falla) y lanza el
// ciclo de refresco. Llamar una sola vez.
func (p *BCVProvider) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	if err := p.refresh(ctx); err != nil {
		p.log.Warn().Err(err).Msg("fetch inicial de tasa falló, intentando espejo Redis")
		if rate, ok := p.loadMirror(ctx); ok {
			p.store(rate)
			p.log.Info().Str("rate", rate.String()).Msg("tasa recuperada desde Redis")
		}
	}

	go p.loop(ctx)
}

// Stop detiene el ciclo de refresco y espera a que termine.
func (p *BCVProvider) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

func (p *BCVProvider) loop(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil {
				p.log.Warn().Err(err).Msg("refresco de tasa falló, se conserva la última tasa buena")
			}
		}
	}
}

func (p *BCVProvider) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.SourceURL, nil)
	if err != nil {
		return fmt.Errorf("build rate request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch rate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch rate: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read rate body: %w", err)
	}
	var payload bcvResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode rate body: %w", err)
	}

	rate := decimal.NewFromFloat(payload.Promedio)
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("rate no positiva: %s", rate)
	}

	p.store(rate)
	p.saveMirror(ctx, rate)
	p.log.Info().Str("rate", rate.String()).Msg("tasa BCV actualizada")
	return nil
}

func (p *BCVProvider) store(rate decimal.Decimal) {
	p.mu.Lock()
	p.rate = rate
	p.fetchedAt = time.Now()
	p.mu.Unlock()
}

func (p *BCVProvider) saveMirror(ctx context.Context, rate decimal.Decimal) {
	if p.rdb == nil {
		return
	}
	if err := p.rdb.Set(ctx, redisRateKey, rate.String(), 0).Err(); err != nil {
		p.log.Warn().Err(err).Msg("no se pudo espejar la tasa en Redis")
	}
}

func (p *BCVProvider) loadMirror(ctx context.Context) (decimal.Decimal, bool) {
	if p.rdb == nil {
		return decimal.Zero, false
	}
	val, err := p.rdb.Get(ctx, redisRateKey).Result()
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(val)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return rate, true
}

// Current devuelve la última tasa conocida (cero si nunca hubo una).
func (p *BCVProvider) Current() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rate
}

// Fallback devuelve la tasa de respaldo configurada.
func (p *BCVProvider) Fallback() decimal.Decimal {
	return p.cfg.FallbackRate
}

// FetchedAt devuelve cuándo se obtuvo la tasa actual.
func (p *BCVProvider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}
