package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/lifecycle"
	"github.com/spec-kit/soporte-service/internal/observability"
	"github.com/spec-kit/soporte-service/internal/store"
)

// EffectKind names a cross-entity side effect.
type EffectKind string

const (
	EffectCreateVisita     EffectKind = "create_visita"
	EffectCreateDerivacion EffectKind = "create_derivacion"
	EffectEscalateTicket   EffectKind = "escalate_ticket"
	EffectResolveTicket    EffectKind = "resolve_ticket"
)

// Effect is one pending cross-entity side effect computed from a committed
// transition. Effects run after the triggering mutation and never roll it
// back.
type Effect struct {
	Kind       EffectKind
	Sesion     *domain.SesionRemota
	Derivacion *domain.Derivacion
	TicketID   string
	Motivo     string
}

// EffectResult reports one effect's outcome. Partial failure is reported
// distinctly from the triggering mutation's success, never conflated with it.
type EffectResult struct {
	Effect           EffectKind  `json:"effect"`
	TargetCollection domain.Kind `json:"targetCollection,omitempty"`
	TargetID         string      `json:"targetId,omitempty"`
	Error            string      `json:"error,omitempty"`
}

// PropagationEngine applies the fixed set of cross-entity side effects.
type PropagationEngine struct {
	store      *store.Store
	directory  *DirectoryService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewPropagationEngine creates the engine.
func NewPropagationEngine(st *store.Store, directory *DirectoryService, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *PropagationEngine {
	return &PropagationEngine{
		store:      st,
		directory:  directory,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// PendingEffects computes the effects triggered by a committed transition.
// Fire-once: the caller invokes this exactly when the transition commits,
// never on replay.
func PendingEffects(item domain.WorkItem, estadoNuevo string) []Effect {
	switch it := item.(type) {
	case *domain.SesionRemota:
		switch estadoNuevo {
		case domain.SesionDerivadaVisita:
			effects := []Effect{{Kind: EffectCreateVisita, Sesion: it}}
			if it.TicketID != "" {
				effects = append(effects, Effect{
					Kind:     EffectEscalateTicket,
					TicketID: it.TicketID,
					Motivo:   fmt.Sprintf("Derivado a visita desde sesión remota %s", it.ID),
				})
			}
			return effects
		case domain.SesionDerivadaPlantaExterna:
			effects := []Effect{{Kind: EffectCreateDerivacion, Sesion: it}}
			if it.TicketID != "" {
				effects = append(effects, Effect{
					Kind:     EffectEscalateTicket,
					TicketID: it.TicketID,
					Motivo:   fmt.Sprintf("Derivado a planta externa desde sesión remota %s", it.ID),
				})
			}
			return effects
		}
	case *domain.Derivacion:
		if estadoNuevo == domain.DerivacionCompletada && it.TicketID != "" {
			return []Effect{{
				Kind:       EffectResolveTicket,
				Derivacion: it,
				TicketID:   it.TicketID,
				Motivo:     fmt.Sprintf("Trabajo de planta externa %s completado", it.ID),
			}}
		}
	}
	return nil
}

// Apply runs each effect in order and reports per-effect outcomes. A failed
// effect is logged and reported; the remaining effects still run.
func (p *PropagationEngine) Apply(ctx context.Context, effects []Effect) []EffectResult {
	if len(effects) == 0 {
		return nil
	}
	results := make([]EffectResult, 0, len(effects))
	for _, effect := range effects {
		result := p.apply(ctx, effect)
		p.report(ctx, effect, result)
		results = append(results, result)
	}
	return results
}

func (p *PropagationEngine) apply(ctx context.Context, effect Effect) EffectResult {
	switch effect.Kind {
	case EffectCreateVisita:
		return p.createVisita(ctx, effect.Sesion)
	case EffectCreateDerivacion:
		return p.createDerivacion(ctx, effect.Sesion)
	case EffectEscalateTicket:
		return p.updateTicket(ctx, effect, domain.TicketEscalado, nil)
	case EffectResolveTicket:
		report := effect.Derivacion.Resolution()
		return p.updateTicket(ctx, effect, domain.TicketResuelto, report)
	}
	return EffectResult{Effect: effect.Kind, Error: "unknown effect"}
}

func (p *PropagationEngine) createVisita(ctx context.Context, sesion *domain.SesionRemota) EffectResult {
	cliente := p.directory.Cliente(ctx, sesion.ClienteID)
	visita := &domain.Visita{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(p.store.Visitas.IDs(), domain.KindVisita.IDPrefix()),
			Estado: domain.VisitaProgramada,
			Fecha:  time.Now(),
		},
		TicketID:       sesion.TicketID,
		SesionOrigenID: sesion.ID,
		ClienteID:      sesion.ClienteID,
		ClienteNombre:  cliente.Nombre,
		Direccion:      cliente.Direccion,
		Nodo:           cliente.Nodo,
		Tecnologia:     cliente.Tecnologia,
		Prioridad:      domain.PriorityAlta,
		Descripcion:    fmt.Sprintf("Visita técnica derivada de la sesión remota %s", sesion.ID),
	}
	p.store.Visitas.Put(visita)
	return EffectResult{Effect: EffectCreateVisita, TargetCollection: domain.KindVisita, TargetID: visita.ID}
}

func (p *PropagationEngine) createDerivacion(ctx context.Context, sesion *domain.SesionRemota) EffectResult {
	cliente := p.directory.Cliente(ctx, sesion.ClienteID)
	derivacion := &domain.Derivacion{
		WorkItemCore: domain.WorkItemCore{
			ID:     lifecycle.NextID(p.store.Derivaciones.IDs(), domain.KindDerivacion.IDPrefix()),
			Estado: domain.DerivacionPendiente,
			Fecha:  time.Now(),
		},
		TicketID:       sesion.TicketID,
		SesionOrigenID: sesion.ID,
		ClienteID:      sesion.ClienteID,
		ClienteNombre:  cliente.Nombre,
		Zona:           cliente.Nodo,
		Prioridad:      domain.PriorityAlta,
		Descripcion:    fmt.Sprintf("Orden de planta externa derivada de la sesión remota %s", sesion.ID),
	}
	p.store.Derivaciones.Put(derivacion)
	return EffectResult{Effect: EffectCreateDerivacion, TargetCollection: domain.KindDerivacion, TargetID: derivacion.ID}
}

func (p *PropagationEngine) updateTicket(ctx context.Context, effect Effect, estado string, report *domain.ResolutionReport) EffectResult {
	result := EffectResult{Effect: effect.Kind, TargetCollection: domain.KindTicket, TargetID: effect.TicketID}
	ticket, ok := p.store.Tickets.Get(effect.TicketID)
	if !ok {
		result.Error = fmt.Sprintf("ticket %s not found", effect.TicketID)
		return result
	}
	previous := ticket.Estado
	changed, err := lifecycle.ApplyStatusChange(ticket, estado, effect.Motivo, report, time.Now())
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if changed {
		p.metrics.RecordTransition(string(domain.KindTicket), previous, estado)
		p.store.Tickets.Put(ticket)
		publishStatusChanged(ctx, p.dispatcher, ticket, previous, effect.Motivo)
	}
	return result
}

func (p *PropagationEngine) report(ctx context.Context, effect Effect, result EffectResult) {
	ok := result.Error == ""
	p.metrics.RecordPropagation(string(effect.Kind), ok)
	if ok {
		p.logger.Info("propagation applied",
			zap.String("effect", string(effect.Kind)),
			zap.String("target", result.TargetID))
		publishEvent(ctx, p.dispatcher, events.Event{
			Type:       events.EventPropagationApplied,
			Collection: result.TargetCollection,
			WorkItemID: result.TargetID,
			Payload: events.PropagationAppliedPayload{
				Effect:           string(effect.Kind),
				TargetCollection: result.TargetCollection,
				TargetID:         result.TargetID,
			},
		})
		return
	}
	p.logger.Warn("propagation failed",
		zap.String("effect", string(effect.Kind)),
		zap.String("target", result.TargetID),
		zap.String("reason", result.Error))
	publishEvent(ctx, p.dispatcher, events.Event{
		Type:       events.EventPropagationFailed,
		Collection: result.TargetCollection,
		WorkItemID: result.TargetID,
		Payload: events.PropagationFailedPayload{
			Effect: string(effect.Kind),
			Reason: result.Error,
		},
	})
}
