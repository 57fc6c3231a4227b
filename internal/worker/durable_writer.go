package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/repository"
	"github.com/spec-kit/soporte-service/internal/store"
	apperrors "github.com/spec-kit/soporte-service/pkg/util"
)

// DurableWriter drains the store journal into postgres snapshots. Writes are
// fire-and-forget relative to the in-memory mutation: a failed write is
// logged as a persistence failure and never surfaced to the caller, whose
// in-memory state already committed.
type DurableWriter struct {
	repo   repository.WorkItemRepository
	logger *zap.Logger
}

// NewDurableWriter constructs the writer.
func NewDurableWriter(repo repository.WorkItemRepository, logger *zap.Logger) *DurableWriter {
	return &DurableWriter{repo: repo, logger: logger}
}

// Run consumes the journal until the context ends or the channel closes.
func (w *DurableWriter) Run(ctx context.Context, changes <-chan store.Change) {
	if w == nil || w.repo == nil || changes == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			w.write(ctx, change)
		}
	}
}

func (w *DurableWriter) write(ctx context.Context, change store.Change) {
	var err error
	switch change.Op {
	case store.OpPut:
		err = w.repo.Save(ctx, change.Collection, change.ID, change.Doc)
	case store.OpDelete:
		err = w.repo.Delete(ctx, change.Collection, change.ID)
	}
	if err != nil {
		w.logger.Error("durable write failed",
			zap.String("code", apperrors.CodePersistenceFailure),
			zap.String("collection", string(change.Collection)),
			zap.String("id", change.ID),
			zap.String("op", string(change.Op)),
			zap.Error(err))
	}
}
