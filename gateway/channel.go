package gateway

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	"github.com/rs/zerolog/log"

	"github.com/plural-labs/escrow-gateway/packet"
	"github.com/plural-labs/escrow-gateway/state"
)

// The handshake entrypoints mirror the IBC channel lifecycle. Ordering
// and version are pinned: anything but an unordered ics20-1 channel is
// rejected before any state exists.

func validateChannelParams(order channeltypes.Order, version string) error {
	if order != channeltypes.UNORDERED {
		return sdkerrors.Wrapf(ErrOrderingNotSupported, "got %s", order)
	}
	if version != packet.Version {
		return sdkerrors.Wrapf(ErrVersionMismatch, "expected %q, got %q", packet.Version, version)
	}
	return nil
}

// OnChanOpenInit validates a channel this chain proposes.
func (g *Gateway) OnChanOpenInit(ctx Context, order channeltypes.Order, connectionID, channelID string, counterparty channeltypes.Counterparty, version string) error {
	if err := validateChannelParams(order, version); err != nil {
		return err
	}
	return g.saveNegotiating(order, connectionID, channelID, counterparty, version)
}

// OnChanOpenTry validates a channel proposed by the counterparty. Both
// the local version and the counterparty's choice must match.
func (g *Gateway) OnChanOpenTry(ctx Context, order channeltypes.Order, connectionID, channelID string, counterparty channeltypes.Counterparty, version, counterpartyVersion string) error {
	if err := validateChannelParams(order, version); err != nil {
		return err
	}
	if counterpartyVersion != packet.Version {
		return sdkerrors.Wrapf(ErrVersionMismatch, "counterparty expected %q, got %q", packet.Version, counterpartyVersion)
	}
	return g.saveNegotiating(order, connectionID, channelID, counterparty, version)
}

func (g *Gateway) saveNegotiating(order channeltypes.Order, connectionID, channelID string, counterparty channeltypes.Counterparty, version string) error {
	return g.withTx(func(kv state.KVStore) error {
		return state.SetChannelInfo(kv, state.ChannelInfo{
			ID:           channelID,
			Counterparty: counterparty,
			ConnectionID: connectionID,
			Version:      version,
			Order:        order,
			Status:       state.StatusNegotiating,
		})
	})
}

// OnChanOpenAck finalizes a channel this chain proposed once the
// counterparty has chosen its version.
func (g *Gateway) OnChanOpenAck(ctx Context, channelID, counterpartyVersion string) error {
	if counterpartyVersion != packet.Version {
		return sdkerrors.Wrapf(ErrVersionMismatch, "counterparty chose %q, expected %q", counterpartyVersion, packet.Version)
	}
	return g.openChannel(channelID)
}

// OnChanOpenConfirm finalizes a channel the counterparty proposed.
func (g *Gateway) OnChanOpenConfirm(ctx Context, channelID string) error {
	return g.openChannel(channelID)
}

func (g *Gateway) openChannel(channelID string) error {
	return g.withTx(func(kv state.KVStore) error {
		info, err := state.GetChannelInfo(kv, channelID)
		if err != nil {
			return err
		}
		info.Status = state.StatusOpen
		if err := state.SetChannelInfo(kv, info); err != nil {
			return err
		}
		log.Info().Str("channel", channelID).Str("version", info.Version).Msg("channel open")
		return nil
	})
}

// OnChanCloseInit handles voluntary closing initiated on this side. It
// is refused while any escrow is outstanding: funds in flight would be
// stranded by a closed channel.
func (g *Gateway) OnChanCloseInit(ctx Context, channelID string) error {
	outstanding, err := state.ChannelHasOutstanding(g.db, channelID)
	if err != nil {
		return err
	}
	if outstanding {
		return sdkerrors.Wrap(ErrChannelClosingNotAllowed, channelID)
	}
	return g.withTx(func(kv state.KVStore) error {
		info, err := state.GetChannelInfo(kv, channelID)
		if err != nil {
			return err
		}
		info.Status = state.StatusClosing
		return state.SetChannelInfo(kv, info)
	})
}

// OnChanCloseConfirm handles a close the chain forces through. A
// channel with zero escrow is removed outright; one with funds still
// outstanding is kept as a CLOSED record for audit, never auto-refunded.
func (g *Gateway) OnChanCloseConfirm(ctx Context, channelID string) error {
	outstanding, err := state.ChannelHasOutstanding(g.db, channelID)
	if err != nil {
		return err
	}
	return g.withTx(func(kv state.KVStore) error {
		info, err := state.GetChannelInfo(kv, channelID)
		if err != nil {
			return err
		}
		if !outstanding {
			return state.DeleteChannelInfo(kv, channelID)
		}
		info.Status = state.StatusClosed
		if err := state.SetChannelInfo(kv, info); err != nil {
			return err
		}
		log.Warn().Str("channel", channelID).Msg("channel closed with escrow outstanding")
		return nil
	})
}
