package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/repository"
)

// DirectoryService resolves client/technician display fields with a redis
// read-through cache. A missing or unreachable directory never fails the
// caller: lookups degrade to zero-value records with empty display fields.
type DirectoryService struct {
	repo   repository.DirectoryRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDirectoryService creates the service. repo and cache may each be nil.
func NewDirectoryService(repo repository.DirectoryRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Cliente returns the directory record for the id, or an empty record when
// it cannot be resolved.
func (d *DirectoryService) Cliente(ctx context.Context, id string) domain.Cliente {
	if d == nil || id == "" {
		return domain.Cliente{}
	}
	cacheKey := "dir:cliente:" + id
	if cached, ok := d.fromCache(ctx, cacheKey); ok {
		var cliente domain.Cliente
		if json.Unmarshal(cached, &cliente) == nil {
			return cliente
		}
	}
	if d.repo == nil {
		return domain.Cliente{}
	}
	cliente, err := d.repo.GetCliente(ctx, id)
	if err != nil {
		d.logger.Debug("cliente lookup failed", zap.String("cliente_id", id), zap.Error(err))
		return domain.Cliente{}
	}
	d.toCache(ctx, cacheKey, cliente)
	return *cliente
}

// Tecnico returns the technician record, or an empty record when unknown.
func (d *DirectoryService) Tecnico(ctx context.Context, id string) domain.Tecnico {
	if d == nil || id == "" {
		return domain.Tecnico{}
	}
	cacheKey := "dir:tecnico:" + id
	if cached, ok := d.fromCache(ctx, cacheKey); ok {
		var tecnico domain.Tecnico
		if json.Unmarshal(cached, &tecnico) == nil {
			return tecnico
		}
	}
	if d.repo == nil {
		return domain.Tecnico{}
	}
	tecnico, err := d.repo.GetTecnico(ctx, id)
	if err != nil {
		d.logger.Debug("tecnico lookup failed", zap.String("tecnico_id", id), zap.Error(err))
		return domain.Tecnico{}
	}
	d.toCache(ctx, cacheKey, tecnico)
	return *tecnico
}

func (d *DirectoryService) fromCache(ctx context.Context, key string) ([]byte, bool) {
	if d.cache == nil {
		return nil, false
	}
	cached, err := d.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return cached, true
}

func (d *DirectoryService) toCache(ctx context.Context, key string, value any) {
	if d.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, key, payload, d.ttl).Err(); err != nil {
		d.logger.Debug("directory cache write failed", zap.String("key", key), zap.Error(err))
	}
}
