package payment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// El descriptor de pago es un campo de texto libre heredado que acumula la
// historia de cobros de una venta: métodos, referencias bancarias, abonos y
// motivos de anulación. Dentro de ese texto viaja un micro-formato: un token
// [CAP:<monto>] por cada avance de efectivo ("capital") entregado desde la
// caja aunque la venta se haya cobrado en digital. Internamente se maneja
// como estructura tipada y solo se serializa al formato textual en la
// frontera de persistencia, byte-compatible con las filas históricas.

// capTokenRe reconoce un token de avance independiente del texto que lo rodee.
var capTokenRe = regexp.MustCompile(`\[CAP:(\d+(\.\d+)?)\]`)

// Descriptor es la representación tipada del descriptor de pago.
type Descriptor struct {
	Methods  []string          // tokens de método/referencia, en orden
	Advances []decimal.Decimal // un monto por cada token [CAP:x]
}

// Parse descompone el texto persistido en métodos y avances. Los tokens CAP
// pueden aparecer en cualquier posición; el texto restante se conserva como
// tokens de método separados por espacios.
func Parse(raw string) Descriptor {
	var d Descriptor
	for _, m := range capTokenRe.FindAllStringSubmatch(raw, -1) {
		amount, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		d.Advances = append(d.Advances, amount)
	}
	rest := capTokenRe.ReplaceAllString(raw, "")
	for _, tok := range strings.Fields(rest) {
		d.Methods = append(d.Methods, tok)
	}
	return d
}

// String serializa al formato textual: los métodos separados por espacio y
// cada avance como token [CAP:monto] concatenado con espacio al final.
func (d Descriptor) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(d.Methods, " "))
	for _, a := range d.Advances {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(CapToken(a))
	}
	return b.String()
}

// TotalAdvance suma los avances embebidos.
func (d Descriptor) TotalAdvance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Advances {
		total = total.Add(a)
	}
	return total
}

// CapToken genera el token textual de un avance.
func CapToken(amount decimal.Decimal) string {
	return fmt.Sprintf("[CAP:%s]", amount.StringFixed(2))
}

// ExtractAdvance busca un token CAP dentro de un texto arbitrario (ej. la
// etiqueta de una línea de avance). Devuelve el monto y si había token.
func ExtractAdvance(text string) (decimal.Decimal, bool) {
	m := capTokenRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// AppendNote agrega una nota al descriptor existente sin borrar el contenido
// previo (la historia completa de cobros vive en un solo campo).
func AppendNote(descriptor, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return descriptor
	}
	if descriptor == "" {
		return note
	}
	return descriptor + " | " + note
}
