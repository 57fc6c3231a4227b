package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisitaCreateCopiesTecnicoNombre(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	visita, err := env.visitas.Create(ctx, VisitaCreateInput{
		ClienteID: "CL-100",
		TecnicoID: "TE-01",
	})
	require.NoError(t, err)
	require.Equal(t, "TE-01", visita.TecnicoID)
	require.Equal(t, "J. Huamán", visita.TecnicoNombre)
	require.Equal(t, "María Quispe", visita.ClienteNombre)
}

func TestVisitaUnknownTecnicoDegradesToEmptyNombre(t *testing.T) {
	env := newTestEnv()

	visita, err := env.visitas.Create(context.Background(), VisitaCreateInput{
		ClienteID: "CL-100",
		TecnicoID: "TE-404",
	})
	require.NoError(t, err)
	require.Equal(t, "TE-404", visita.TecnicoID)
	require.Empty(t, visita.TecnicoNombre)
}

func TestVisitaUpdateReassignmentRefreshesTecnicoNombre(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	visita, err := env.visitas.Create(ctx, VisitaCreateInput{ClienteID: "CL-100"})
	require.NoError(t, err)
	require.Empty(t, visita.TecnicoNombre)

	tecnico := "TE-01"
	updated, err := env.visitas.Update(ctx, visita.ID, VisitaUpdateInput{TecnicoID: &tecnico})
	require.NoError(t, err)
	require.Equal(t, "TE-01", updated.TecnicoID)
	require.Equal(t, "J. Huamán", updated.TecnicoNombre)
}
