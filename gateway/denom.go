package gateway

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/plural-labs/escrow-gateway/packet"
)

// Token contracts appear on the wire and in the escrow ledger as
// "cw20:<contract>" denoms, so an inbound denom maps back to the
// contract that must pay it out.
const denomPrefix = "cw20:"

func ContractDenom(contract string) string {
	return denomPrefix + contract
}

func ContractFromDenom(denom string) (string, error) {
	if !strings.HasPrefix(denom, denomPrefix) || len(denom) == len(denomPrefix) {
		return "", sdkerrors.Wrapf(packet.ErrMalformedPacket, "denom %q does not name a local token contract", denom)
	}
	return denom[len(denomPrefix):], nil
}
