package packet

import (
	"encoding/json"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Version is the application version string negotiated on every channel
// the gateway is bound to. Any other proposal is rejected during the
// handshake.
const Version = "ics20-1"

// TokenPacketData is the ICS-20 payload carried in a packet's data
// field. The amount crosses the wire as a decimal string so arbitrarily
// large values survive the textual envelope intact.
type TokenPacketData struct {
	Denom    string  `json:"denom"`
	Amount   sdk.Int `json:"amount"`
	Sender   string  `json:"sender"`
	Receiver string  `json:"receiver"`
	Memo     string  `json:"memo,omitempty"`
}

func NewTokenPacketData(denom string, amount sdk.Int, sender, receiver, memo string) TokenPacketData {
	return TokenPacketData{
		Denom:    denom,
		Amount:   amount,
		Sender:   sender,
		Receiver: receiver,
		Memo:     memo,
	}
}

// ValidateBasic checks the payload is well formed. Address formats are
// not validated here: the sender lives on the counterparty chain and its
// format is unknown to this side.
func (d TokenPacketData) ValidateBasic() error {
	if strings.TrimSpace(d.Denom) == "" {
		return sdkerrors.Wrap(ErrMalformedPacket, "denom cannot be blank")
	}
	if d.Amount.IsNil() || !d.Amount.IsPositive() {
		return sdkerrors.Wrapf(ErrMalformedPacket, "amount must be strictly positive: got %s", d.Amount)
	}
	if strings.TrimSpace(d.Sender) == "" {
		return sdkerrors.Wrap(ErrMalformedPacket, "sender cannot be blank")
	}
	if strings.TrimSpace(d.Receiver) == "" {
		return sdkerrors.Wrap(ErrMalformedPacket, "receiver cannot be blank")
	}
	return nil
}

// GetBytes returns the deterministic wire encoding of the payload.
func (d TokenPacketData) GetBytes() []byte {
	bz, err := json.Marshal(d)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// DecodePacketData parses and validates an inbound payload. Syntax
// errors, non-numeric or overflowing amounts and missing fields all
// surface as ErrMalformedPacket.
func DecodePacketData(bz []byte) (TokenPacketData, error) {
	var data TokenPacketData
	if err := json.Unmarshal(bz, &data); err != nil {
		return TokenPacketData{}, sdkerrors.Wrap(ErrMalformedPacket, err.Error())
	}
	if err := data.ValidateBasic(); err != nil {
		return TokenPacketData{}, err
	}
	return data, nil
}
