package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var movementSigns = map[MovementType]int64{
	MovementBuy:         1,
	MovementDeposit:     1,
	MovementTransferIn:  1,
	MovementAdjustment:  1,
	MovementSell:        -1,
	MovementWithdraw:    -1,
	MovementTransferOut: -1,
	MovementFee:         -1,
}

// Delta maps a movement to the signed quantity change it applies to a holding:
// sign(type)*quantity - fee. The fee is always subtracted, whatever the
// direction. Applying and reversing a movement both go through this function.
func Delta(t MovementType, quantity, fee decimal.Decimal) (decimal.Decimal, error) {
	sign, ok := movementSigns[t]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown movement type %q", t)
	}
	return quantity.Mul(decimal.NewFromInt(sign)).Sub(fee), nil
}
