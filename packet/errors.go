package packet

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

var ErrMalformedPacket = sdkerrors.Register("packet", 2, "malformed packet")
