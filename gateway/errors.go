package gateway

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	ErrNotAllowed               = sdkerrors.Register("gateway", 2, "token contract not on allow list")
	ErrUnauthorized             = sdkerrors.Register("gateway", 3, "unauthorized")
	ErrVersionMismatch          = sdkerrors.Register("gateway", 4, "channel version mismatch")
	ErrOrderingNotSupported     = sdkerrors.Register("gateway", 5, "only unordered channels are supported")
	ErrChannelClosingNotAllowed = sdkerrors.Register("gateway", 6, "channel cannot be closed while escrow is outstanding")
	ErrChannelNotOpen           = sdkerrors.Register("gateway", 7, "channel is not open")
	ErrInvalidAmount            = sdkerrors.Register("gateway", 8, "invalid amount")
	ErrInvalidAddress           = sdkerrors.Register("gateway", 9, "invalid address")
	ErrInvalidCommission        = sdkerrors.Register("gateway", 10, "commission must be between 0 and 1")
	ErrNoFees                   = sdkerrors.Register("gateway", 11, "no fees collected for denom")
)
