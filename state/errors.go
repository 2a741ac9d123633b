package state

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var (
	ErrChannelNotFound    = sdkerrors.Register("state", 2, "channel not found")
	ErrInsufficientEscrow = sdkerrors.Register("state", 3, "insufficient escrow")
	ErrUnknownPacket      = sdkerrors.Register("state", 4, "no pending transfer for packet")
	ErrAlreadyResolved    = sdkerrors.Register("state", 5, "pending transfer already resolved")
	ErrAlreadyPending     = sdkerrors.Register("state", 6, "pending transfer already recorded")
)
