package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PeriodSummary saldos y totales de un producto dentro de una ventana de fechas.
type PeriodSummary struct {
	Beginning decimal.Decimal
	GoodsIn   decimal.Decimal
	GoodsOut  decimal.Decimal
	Ending    decimal.Decimal
	First     *entity.StockMovement
	Last      *entity.StockMovement
}

// Merge intercala entradas y salidas (cada una ya ordenada por CreatedAt, Seq) en una sola secuencia.
// Con el mismo CreatedAt decide Seq, que refleja el orden real de inserción.
func Merge(inputs, outputs []*entity.StockMovement) []*entity.StockMovement {
	merged := make([]*entity.StockMovement, 0, len(inputs)+len(outputs))
	i, j := 0, 0
	for i < len(inputs) && j < len(outputs) {
		if outputs[j].Before(inputs[i]) {
			merged = append(merged, outputs[j])
			j++
			continue
		}
		merged = append(merged, inputs[i])
		i++
	}
	merged = append(merged, inputs[i:]...)
	return append(merged, outputs[j:]...)
}

// Summarize reconstruye saldo inicial, entradas, salidas y saldo final a partir de los
// movimientos de la ventana. El saldo inicial sale del primer movimiento de la secuencia
// combinada (saldo antes del movimiento) y el final del último (su RunningBalance).
// Sin movimientos ambos son cero.
func Summarize(inputs, outputs []*entity.StockMovement) PeriodSummary {
	s := PeriodSummary{
		Beginning: decimal.Zero,
		GoodsIn:   decimal.Zero,
		GoodsOut:  decimal.Zero,
		Ending:    decimal.Zero,
	}
	for _, m := range inputs {
		s.GoodsIn = s.GoodsIn.Add(m.Quantity)
	}
	for _, m := range outputs {
		s.GoodsOut = s.GoodsOut.Add(m.Quantity)
	}
	merged := Merge(inputs, outputs)
	if len(merged) == 0 {
		return s
	}
	first, last := merged[0], merged[len(merged)-1]
	s.Beginning = first.BalanceBefore()
	s.Ending = last.RunningBalance
	s.First = first
	s.Last = last
	return s
}

// IsZero indica si todos los valores del periodo son cero (fila omitida del reporte).
func (s PeriodSummary) IsZero() bool {
	return s.Beginning.IsZero() && s.GoodsIn.IsZero() && s.GoodsOut.IsZero() && s.Ending.IsZero()
}
