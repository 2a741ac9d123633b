package gateway

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	"github.com/rs/zerolog/log"

	"github.com/plural-labs/escrow-gateway/packet"
	"github.com/plural-labs/escrow-gateway/state"
)

// ackSuccessPayload is the opaque result carried by every success
// acknowledgement.
var ackSuccessPayload = []byte{1}

// OnRecvPacket handles an inbound packet carrying tokens back from the
// counterparty. It always returns an acknowledgement: on any failure
// every write of the invocation is discarded and the error becomes the
// error variant, so the counterparty learns the outcome while this side
// commits nothing.
func (g *Gateway) OnRecvPacket(ctx Context, pkt channeltypes.Packet) packet.Acknowledgement {
	if err := g.recvPacket(ctx, pkt); err != nil {
		log.Info().
			Err(err).
			Str("channel", pkt.DestinationChannel).
			Uint64("sequence", pkt.Sequence).
			Msg("inbound transfer rejected")
		return packet.NewErrorAck(err)
	}
	return packet.NewResultAck(ackSuccessPayload)
}

func (g *Gateway) recvPacket(ctx Context, pkt channeltypes.Packet) error {
	data, err := packet.DecodePacketData(pkt.GetData())
	if err != nil {
		return err
	}
	contract, err := ContractFromDenom(data.Denom)
	if err != nil {
		return err
	}
	if err := validateAddress(g.cfg.Bech32Prefix, data.Receiver); err != nil {
		return sdkerrors.Wrap(err, "receiver")
	}

	return g.withTx(func(kv state.KVStore) error {
		// The credit is the one place escrow accounting gates
		// protocol-level success: more than outstanding means the
		// counterparty claims tokens this channel never escrowed.
		if err := state.CreditChannel(kv, pkt.DestinationChannel, data.Denom, data.Amount); err != nil {
			return err
		}

		// The payout is deliberately synchronous. A failure here must
		// abort the whole invocation so the discarded credit and the
		// error acknowledgement stay consistent; deferring it would
		// decouple the two.
		if err := g.bank.Transfer(ctx, contract, data.Receiver, data.Amount); err != nil {
			return err
		}

		emitReceive(pkt.DestinationChannel, pkt.Sequence, data.Denom, data.Receiver, data.Amount)
		return nil
	})
}

// OnAcknowledgementPacket resolves an outbound transfer once the
// counterparty's acknowledgement arrives. A success ack leaves the
// escrow in place backing the remote representation; an error ack
// releases it and refunds the original sender.
func (g *Gateway) OnAcknowledgementPacket(ctx Context, pkt channeltypes.Packet, ackBytes []byte) error {
	ack, err := packet.DecodeAcknowledgement(ackBytes)
	if err != nil {
		return err
	}
	if ack.Success() {
		return g.resolveSuccess(pkt)
	}
	return g.refund(ctx, pkt, "acknowledgement error: "+ack.Error)
}

// OnTimeoutPacket resolves an outbound transfer whose deadline elapsed
// before delivery. The escrow is released and the original sender
// refunded.
func (g *Gateway) OnTimeoutPacket(ctx Context, pkt channeltypes.Packet) error {
	return g.refund(ctx, pkt, "timeout")
}

func (g *Gateway) resolveSuccess(pkt channeltypes.Packet) error {
	return g.withTx(func(kv state.KVStore) error {
		p, err := state.GetPendingTransfer(kv, pkt.SourceChannel, pkt.Sequence)
		if err != nil {
			return err
		}
		if p.Status != state.StatusAwaitingAck {
			return sdkerrors.Wrapf(state.ErrAlreadyResolved, "%s/%d is %s", p.ChannelID, p.Sequence, p.Status)
		}
		if err := state.DeletePendingTransfer(kv, p.ChannelID, p.Sequence); err != nil {
			return err
		}
		emitAckSuccess(p.ChannelID, p.Sequence, p.Denom, p.Amount)
		return nil
	})
}

// refund releases the escrow and dispatches the deferred refund
// sub-call. It reports success to the protocol layer even when the
// dispatch itself fails: the acknowledgement or timeout is a protocol
// fact that must not be blocked by a downstream token failure, so a
// dispatch failure is recorded on the pending entry instead.
func (g *Gateway) refund(ctx Context, pkt channeltypes.Packet, reason string) error {
	return g.withTx(func(kv state.KVStore) error {
		p, err := state.GetPendingTransfer(kv, pkt.SourceChannel, pkt.Sequence)
		if err != nil {
			return err
		}
		if p.Status != state.StatusAwaitingAck {
			return sdkerrors.Wrapf(state.ErrAlreadyResolved, "%s/%d is %s", p.ChannelID, p.Sequence, p.Status)
		}

		if err := state.CreditChannel(kv, p.ChannelID, p.Denom, p.Amount); err != nil {
			return err
		}

		gasLimit := g.cfg.DefaultGasLimit
		if allow, found, err := state.GetAllowInfo(kv, p.Contract); err != nil {
			return err
		} else if found && allow.GasLimit != nil {
			gasLimit = *allow.GasLimit
		}

		id := ReplyID{ChannelID: p.ChannelID, Sequence: p.Sequence}
		if err := g.bank.SubmitTransfer(ctx, id, p.Contract, p.Sender, p.Amount, gasLimit); err != nil {
			p.Status = state.StatusRefundFailed
			if err := state.SetPendingTransfer(kv, p); err != nil {
				return err
			}
			emitRefundSettled(p.ChannelID, p.Sequence, p.Denom, p.Amount, err)
			return nil
		}

		p.Status = state.StatusRefunding
		if err := state.SetPendingTransfer(kv, p); err != nil {
			return err
		}
		emitRefundQueued(p.ChannelID, p.Sequence, p.Denom, p.Amount, reason)
		return nil
	})
}
