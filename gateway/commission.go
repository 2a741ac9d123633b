package gateway

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"
)

// splitCommission divides an incoming amount into the commission the
// gateway retains and the remainder that is escrowed and sent. The
// commission rounds up, so any nonzero rate takes at least one unit.
func splitCommission(rate decimal.Decimal, amount sdk.Int) (fee, remainder sdk.Int) {
	if rate.IsZero() {
		return sdk.ZeroInt(), amount
	}
	amt := decimal.NewFromBigInt(amount.BigInt(), 0)
	fee = sdk.NewIntFromBigInt(rate.Mul(amt).Ceil().BigInt())
	return fee, amount.Sub(fee)
}
