package entity

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de stock y cantidades (columnas INTEGER).
const MaxQuantity = math.MaxInt32

// maxMoney primer valor que ya no cabe en NUMERIC(12,2).
var maxMoney = decimal.New(1, 10)

// MoneyFits indica si d se guarda en NUMERIC(12,2) sin redondear: como mucho
// dos decimales y menos de 10^10 en valor absoluto.
func MoneyFits(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}
