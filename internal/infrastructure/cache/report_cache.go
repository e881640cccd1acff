package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

const (
	keyPrefix  = "almacen:report"
	versionKey = keyPrefix + ":version"
)

// ReportCache caché de reportes en Redis con versión global: cada movimiento confirmado
// o cambio de producto, categoría o unidad incrementa la versión y las claves anteriores dejan de usarse (expiran por TTL).
// Peticiones idénticas concurrentes se resuelven con un solo cálculo (singleflight).
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	log    *logger.Logger
}

// NewReportCache crea el caché. client nil = sin Redis, solo singleflight.
func NewReportCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *ReportCache {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportCache{client: client, ttl: ttl, log: log}
}

// Version versión vigente; la inicializa en 1 si falta.
func (c *ReportCache) Version(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	return ver, err
}

// GetOrBuild devuelve el reporte cacheado para key o lo calcula con build y lo guarda.
// Un fallo de Redis no impide responder: se calcula directamente.
func (c *ReportCache) GetOrBuild(ctx context.Context, key string, build func(context.Context) ([]dto.ReportRow, error)) ([]dto.ReportRow, error) {
	if build == nil {
		return nil, errors.New("cache: build requerido")
	}
	fullKey := key
	if c.client != nil {
		ver, err := c.Version(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("redis no disponible, reporte sin caché")
			return c.shared(ctx, key, build)
		}
		fullKey = fmt.Sprintf("%s:%s:%d", keyPrefix, key, ver)
		payload, err := c.client.Get(ctx, fullKey).Bytes()
		if err == nil {
			var rows []dto.ReportRow
			if err := json.Unmarshal(payload, &rows); err == nil {
				return rows, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", fullKey).Msg("error leyendo caché de reportes")
		}
	}

	rows, err := c.shared(ctx, fullKey, build)
	if err != nil {
		return nil, err
	}
	if c.client != nil {
		raw, err := json.Marshal(rows)
		if err == nil {
			err = c.client.Set(ctx, fullKey, raw, c.ttl).Err()
		}
		if err != nil {
			c.log.Warn().Err(err).Str("key", fullKey).Msg("no se pudo guardar el reporte en caché")
		}
	}
	return rows, nil
}

func (c *ReportCache) shared(ctx context.Context, key string, build func(context.Context) ([]dto.ReportRow, error)) ([]dto.ReportRow, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return build(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]dto.ReportRow), nil
	}
}

// Invalidate incrementa la versión global.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}
