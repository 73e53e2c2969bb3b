package payment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa-solidaria/pos-api/internal/domain/payment"
)

func TestParse_MetodosYAvancesMezclados(t *testing.T) {
	d := payment.Parse("PAGO-MOVIL REF:1234 [CAP:50.00] EFECTIVO [CAP:20.00]")

	assert.Equal(t, []string{"PAGO-MOVIL", "REF:1234", "EFECTIVO"}, d.Methods)
	require.Len(t, d.Advances, 2)
	assert.True(t, d.Advances[0].Equal(decimal.NewFromInt(50)))
	assert.True(t, d.Advances[1].Equal(decimal.NewFromInt(20)))
	assert.True(t, d.TotalAdvance().Equal(decimal.NewFromInt(70)))
}

func TestParse_SinTokens(t *testing.T) {
	d := payment.Parse("EFECTIVO")
	assert.Equal(t, []string{"EFECTIVO"}, d.Methods)
	assert.Empty(t, d.Advances)
	assert.True(t, d.TotalAdvance().IsZero())
}

func TestParse_TextoVacio(t *testing.T) {
	d := payment.Parse("")
	assert.Empty(t, d.Methods)
	assert.Empty(t, d.Advances)
}

// El round-trip con filas históricas es el contrato del micro-formato: lo que
// se parsea y re-serializa debe seguir siendo parseable con los mismos montos.
func TestStringParse_RoundTrip(t *testing.T) {
	original := payment.Descriptor{
		Methods:  []string{"ZELLE", "REF:A-99"},
		Advances: []decimal.Decimal{decimal.NewFromFloat(12.5)},
	}

	serial := original.String()
	assert.Equal(t, "ZELLE REF:A-99 [CAP:12.50]", serial)

	parsed := payment.Parse(serial)
	assert.Equal(t, original.Methods, parsed.Methods)
	require.Len(t, parsed.Advances, 1)
	assert.True(t, parsed.Advances[0].Equal(original.Advances[0]))
}

func TestCapToken_DosDecimalesSiempre(t *testing.T) {
	assert.Equal(t, "[CAP:50.00]", payment.CapToken(decimal.NewFromInt(50)))
	assert.Equal(t, "[CAP:12.50]", payment.CapToken(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "[CAP:0.05]", payment.CapToken(decimal.NewFromFloat(0.05)))
}

func TestExtractAdvance_DentroDeEtiqueta(t *testing.T) {
	amount, ok := payment.ExtractAdvance("Avance de efectivo [CAP:35.75] punto de venta")
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.NewFromFloat(35.75)))

	_, ok = payment.ExtractAdvance("Avance sin token")
	assert.False(t, ok)

	// Token malformado no cuenta como avance.
	_, ok = payment.ExtractAdvance("[CAP:abc]")
	assert.False(t, ok)
}

func TestAppendNote_PreservaHistoria(t *testing.T) {
	desc := "EFECTIVO [CAP:10.00]"
	desc = payment.AppendNote(desc, "ABONO 5.00 PAGO-MOVIL")
	desc = payment.AppendNote(desc, "ANULADA: producto vencido")

	assert.Equal(t, "EFECTIVO [CAP:10.00] | ABONO 5.00 PAGO-MOVIL | ANULADA: producto vencido", desc)

	// El token CAP sobrevive a las notas anexadas.
	d := payment.Parse(desc)
	require.Len(t, d.Advances, 1)
	assert.True(t, d.Advances[0].Equal(decimal.NewFromInt(10)))
}

func TestAppendNote_CasosVacios(t *testing.T) {
	assert.Equal(t, "nota", payment.AppendNote("", "nota"))
	assert.Equal(t, "previo", payment.AppendNote("previo", ""))
	assert.Equal(t, "previo", payment.AppendNote("previo", "   "))
}
