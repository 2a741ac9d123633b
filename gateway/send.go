package gateway

import (
	"strings"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	clienttypes "github.com/cosmos/ibc-go/v3/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/plural-labs/escrow-gateway/packet"
	"github.com/plural-labs/escrow-gateway/state"
)

// TransferMsg is the instruction attached to tokens arriving at the
// gateway's receive hook. Timeout is either an absolute height or an
// absolute timestamp (unix nanoseconds); when the caller supplies
// neither, the configured default is applied from the block time.
type TransferMsg struct {
	ChannelID        string
	RemoteAddress    string
	TimeoutHeight    clienttypes.Height
	TimeoutTimestamp uint64
	Memo             string
}

// OnTokenReceived is the receive hook: a local token contract has moved
// amount into the gateway's custody on behalf of sender, with
// instructions to bridge it. On success the escrow is debited, an
// in-flight record is created and the packet to emit is returned. Any
// failure leaves no trace.
func (g *Gateway) OnTokenReceived(ctx Context, contract, sender string, amount sdk.Int, msg TransferMsg) (channeltypes.Packet, error) {
	if amount.IsNil() || !amount.IsPositive() {
		return channeltypes.Packet{}, sdkerrors.Wrapf(ErrInvalidAmount, "got %s", amount)
	}
	if err := validateAddress(g.cfg.Bech32Prefix, sender); err != nil {
		return channeltypes.Packet{}, sdkerrors.Wrap(err, "sender")
	}
	if err := validateAddress(g.cfg.Bech32Prefix, contract); err != nil {
		return channeltypes.Packet{}, sdkerrors.Wrap(err, "contract")
	}
	if strings.TrimSpace(msg.RemoteAddress) == "" {
		return channeltypes.Packet{}, sdkerrors.Wrap(ErrInvalidAddress, "remote recipient cannot be blank")
	}

	var pkt channeltypes.Packet
	err := g.withTx(func(kv state.KVStore) error {
		allow, found, err := state.GetAllowInfo(kv, contract)
		if err != nil {
			return err
		}
		if !found || !allow.Enabled {
			return sdkerrors.Wrap(ErrNotAllowed, contract)
		}

		info, err := state.GetChannelInfo(kv, msg.ChannelID)
		if err != nil {
			return err
		}
		if info.Status != state.StatusOpen {
			return sdkerrors.Wrapf(ErrChannelNotOpen, "%s is %s", msg.ChannelID, info.Status)
		}

		fee, remainder := splitCommission(g.cfg.Commission, amount)
		if !remainder.IsPositive() {
			return sdkerrors.Wrapf(ErrInvalidAmount, "commission consumes the whole amount %s", amount)
		}

		denom := ContractDenom(contract)
		if !fee.IsZero() {
			if err := state.AddCollectedFees(kv, denom, fee); err != nil {
				return err
			}
		}
		if err := state.DebitChannel(kv, msg.ChannelID, denom, remainder); err != nil {
			return err
		}

		seq, err := state.NextSequence(kv, msg.ChannelID)
		if err != nil {
			return err
		}

		timeoutHeight, timeoutTimestamp := msg.TimeoutHeight, msg.TimeoutTimestamp
		if timeoutHeight.IsZero() && timeoutTimestamp == 0 {
			timeoutTimestamp = uint64(ctx.BlockTime.Add(time.Duration(g.cfg.DefaultTimeout) * time.Second).UnixNano())
		}

		data := packet.NewTokenPacketData(denom, remainder, sender, msg.RemoteAddress, msg.Memo)
		if err := data.ValidateBasic(); err != nil {
			return err
		}
		pkt = channeltypes.NewPacket(
			data.GetBytes(), seq,
			g.cfg.PortID, msg.ChannelID,
			info.Counterparty.PortId, info.Counterparty.ChannelId,
			timeoutHeight, timeoutTimestamp,
		)

		if err := state.CreatePendingTransfer(kv, state.PendingTransfer{
			ChannelID: msg.ChannelID,
			Sequence:  seq,
			Denom:     denom,
			Amount:    remainder,
			Contract:  contract,
			Sender:    sender,
			Status:    state.StatusAwaitingAck,
		}); err != nil {
			return err
		}

		emitSend(msg.ChannelID, seq, denom, sender, msg.RemoteAddress, remainder, fee)
		return nil
	})
	if err != nil {
		return channeltypes.Packet{}, err
	}
	return pkt, nil
}
