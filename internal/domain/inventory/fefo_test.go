package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa-solidaria/pos-api/internal/domain"
	"github.com/despensa-solidaria/pos-api/internal/domain/entity"
	"github.com/despensa-solidaria/pos-api/internal/domain/inventory"
)

var testBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// batch construye un lote de prueba. days < 0 = sin vencimiento.
func batch(id string, qty int64, days int, createdOffset time.Duration) entity.Batch {
	b := entity.Batch{
		ID:        id,
		ProductID: "prod-1",
		Label:     "LOTE-" + id,
		Quantity:  decimal.NewFromInt(qty),
		CreatedAt: testBase.Add(createdOffset),
	}
	if days >= 0 {
		exp := testBase.AddDate(0, 0, days)
		b.ExpiresAt = &exp
	}
	return b
}

func TestSortFEFO_VenceProntoPrimero(t *testing.T) {
	batches := []entity.Batch{
		batch("sin-vencimiento", 10, -1, 0),
		batch("dia-10", 10, 10, 0),
		batch("dia-5", 10, 5, 0),
	}

	inventory.SortFEFO(batches)

	require.Len(t, batches, 3)
	assert.Equal(t, "dia-5", batches[0].ID, "el lote que vence primero va de primero")
	assert.Equal(t, "dia-10", batches[1].ID)
	assert.Equal(t, "sin-vencimiento", batches[2].ID, "sin vencimiento se trata como 'vence nunca'")
}

func TestSortFEFO_EmpatesPorCreacionYLuegoID(t *testing.T) {
	batches := []entity.Batch{
		batch("b", 10, 5, 2*time.Hour),
		batch("c", 10, 5, time.Hour),
		batch("a", 10, 5, time.Hour),
	}

	inventory.SortFEFO(batches)

	assert.Equal(t, "a", batches[0].ID, "mismo vencimiento y creación: desempata el ID")
	assert.Equal(t, "c", batches[1].ID)
	assert.Equal(t, "b", batches[2].ID)
}

func TestPlanDeduction_CruzaVariosLotes(t *testing.T) {
	batches := []entity.Batch{
		batch("tardio", 20, 30, 0),
		batch("temprano", 3, 2, 0),
	}

	plan, err := inventory.PlanDeduction(batches, decimal.NewFromInt(5))
	require.NoError(t, err)
	require.True(t, plan.Fulfilled())
	require.Len(t, plan.Deductions, 2)

	// Agota primero el lote que vence antes, el resto sale del siguiente.
	assert.Equal(t, "temprano", plan.Deductions[0].BatchID)
	assert.True(t, plan.Deductions[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, plan.Deductions[0].RemainingAfter.IsZero())

	assert.Equal(t, "tardio", plan.Deductions[1].BatchID)
	assert.True(t, plan.Deductions[1].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, plan.Deductions[1].RemainingAfter.Equal(decimal.NewFromInt(18)))
}

func TestPlanDeduction_FaltanteSeReportaNoSeRechaza(t *testing.T) {
	batches := []entity.Batch{batch("unico", 4, 5, 0)}

	plan, err := inventory.PlanDeduction(batches, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.False(t, plan.Fulfilled())
	assert.True(t, plan.Shortfall.Equal(decimal.NewFromInt(6)), "faltante = pedido - disponible")
	require.Len(t, plan.Deductions, 1)
	assert.True(t, plan.Deductions[0].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestPlanDeduction_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.PlanDeduction(nil, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.PlanDeduction(nil, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanDeduction_IgnoraLotesVacios(t *testing.T) {
	batches := []entity.Batch{
		batch("vacio", 0, 1, 0),
		batch("lleno", 10, 5, 0),
	}

	plan, err := inventory.PlanDeduction(batches, decimal.NewFromInt(2))
	require.NoError(t, err)
	require.Len(t, plan.Deductions, 1)
	assert.Equal(t, "lleno", plan.Deductions[0].BatchID)
}

func TestPlanDeduction_NoMutaElSliceOriginal(t *testing.T) {
	batches := []entity.Batch{
		batch("dia-10", 10, 10, 0),
		batch("dia-5", 10, 5, 0),
	}

	_, err := inventory.PlanDeduction(batches, decimal.NewFromInt(15))
	require.NoError(t, err)

	// Orden y cantidades intactos: el plan trabaja sobre una copia.
	assert.Equal(t, "dia-10", batches[0].ID)
	assert.True(t, batches[0].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestPickRestockBatch_PrefiereElMasFresco(t *testing.T) {
	batches := []entity.Batch{
		batch("dia-5", 10, 5, 0),
		batch("dia-30", 10, 30, 0),
		batch("dia-10", 10, 10, 0),
	}

	pick := inventory.PickRestockBatch(batches)
	require.NotNil(t, pick)
	assert.Equal(t, "dia-30", pick.ID, "el reingreso va al lote de vencimiento más lejano")
}

func TestPickRestockBatch_SinVencimientoGanaSiempre(t *testing.T) {
	batches := []entity.Batch{
		batch("dia-30", 10, 30, 0),
		batch("eterno", 10, -1, 0),
	}

	pick := inventory.PickRestockBatch(batches)
	require.NotNil(t, pick)
	assert.Equal(t, "eterno", pick.ID)
}

func TestPickRestockBatch_SinLotes(t *testing.T) {
	assert.Nil(t, inventory.PickRestockBatch(nil))
}

func TestTotalQuantity_SumaCompleta(t *testing.T) {
	batches := []entity.Batch{
		batch("a", 3, 5, 0),
		batch("b", 7, -1, 0),
	}
	assert.True(t, inventory.TotalQuantity(batches).Equal(decimal.NewFromInt(10)))
	assert.True(t, inventory.TotalQuantity(nil).IsZero())
}
