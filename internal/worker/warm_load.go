package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/repository"
	"github.com/spec-kit/soporte-service/internal/store"
)

// WarmLoad seeds the in-memory store from postgres snapshots. Documents that
// fail to decode are skipped and logged; a cold store is always preferable to
// refusing to boot.
func WarmLoad(ctx context.Context, repo repository.WorkItemRepository, st *store.Store, logger *zap.Logger) error {
	if err := seedCollection(ctx, repo, domain.KindTicket, st.Tickets, logger); err != nil {
		return err
	}
	if err := seedCollection(ctx, repo, domain.KindAveria, st.Averias, logger); err != nil {
		return err
	}
	if err := seedCollection(ctx, repo, domain.KindVisita, st.Visitas, logger); err != nil {
		return err
	}
	if err := seedCollection(ctx, repo, domain.KindDerivacion, st.Derivaciones, logger); err != nil {
		return err
	}
	if err := seedCollection(ctx, repo, domain.KindSesionRemota, st.Sesiones, logger); err != nil {
		return err
	}
	return seedCollection(ctx, repo, domain.KindPostVenta, st.PostVentas, logger)
}

func seedCollection[T domain.WorkItem](ctx context.Context, repo repository.WorkItemRepository, kind domain.Kind, col *store.Collection[T], logger *zap.Logger) error {
	docs, err := repo.LoadAll(ctx, kind)
	if err != nil {
		return err
	}
	items := make([]T, 0, len(docs))
	for id, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			logger.Warn("skipping undecodable snapshot",
				zap.String("collection", string(kind)),
				zap.String("id", id),
				zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	col.Seed(items)
	logger.Info("collection warmed",
		zap.String("collection", string(kind)),
		zap.Int("items", len(items)))
	return nil
}
