package packet

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Acknowledgement is the envelope returned for every delivered packet.
// Exactly one of Result or Error is set: Result carries an opaque
// success payload, Error a human-readable failure message.
type Acknowledgement struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewResultAck(result []byte) Acknowledgement {
	return Acknowledgement{Result: result}
}

func NewErrorAck(err error) Acknowledgement {
	return Acknowledgement{Error: err.Error()}
}

// Success reports whether the acknowledgement carries the result
// variant.
func (a Acknowledgement) Success() bool {
	return a.Error == ""
}

// GetBytes returns the deterministic wire encoding of the envelope.
func (a Acknowledgement) GetBytes() []byte {
	bz, err := json.Marshal(a)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// DecodeAcknowledgement parses an acknowledgement envelope, rejecting
// anything that does not carry exactly one variant.
func DecodeAcknowledgement(bz []byte) (Acknowledgement, error) {
	var ack Acknowledgement
	if err := json.Unmarshal(bz, &ack); err != nil {
		return Acknowledgement{}, sdkerrors.Wrap(ErrMalformedPacket, err.Error())
	}
	if len(ack.Result) == 0 && ack.Error == "" {
		return Acknowledgement{}, sdkerrors.Wrap(ErrMalformedPacket, "acknowledgement carries neither result nor error")
	}
	if len(ack.Result) != 0 && ack.Error != "" {
		return Acknowledgement{}, sdkerrors.Wrap(ErrMalformedPacket, "acknowledgement carries both result and error")
	}
	return ack, nil
}
