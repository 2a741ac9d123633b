package gateway_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/plural-labs/escrow-gateway/gateway"
	"github.com/plural-labs/escrow-gateway/packet"
	"github.com/plural-labs/escrow-gateway/state"
)

func (s *GatewayTestSuite) TestHandshakeRejectsOrderedChannels() {
	cp := channeltypes.NewCounterparty(remotePort, "channel-8")

	err := s.gw.OnChanOpenInit(s.ctx(), channeltypes.ORDERED, "connection-0", "channel-1", cp, packet.Version)
	s.Require().ErrorIs(err, gateway.ErrOrderingNotSupported)

	err = s.gw.OnChanOpenTry(s.ctx(), channeltypes.ORDERED, "connection-0", "channel-1", cp, packet.Version, packet.Version)
	s.Require().ErrorIs(err, gateway.ErrOrderingNotSupported)

	// rejection happens before anything is recorded
	_, err = state.GetChannelInfo(s.db, "channel-1")
	s.Require().ErrorIs(err, state.ErrChannelNotFound)
}

func (s *GatewayTestSuite) TestHandshakeRejectsForeignVersions() {
	cp := channeltypes.NewCounterparty(remotePort, "channel-8")

	err := s.gw.OnChanOpenInit(s.ctx(), channeltypes.UNORDERED, "connection-0", "channel-1", cp, "ics20-2")
	s.Require().ErrorIs(err, gateway.ErrVersionMismatch)

	err = s.gw.OnChanOpenTry(s.ctx(), channeltypes.UNORDERED, "connection-0", "channel-1", cp, packet.Version, "ics27-1")
	s.Require().ErrorIs(err, gateway.ErrVersionMismatch)

	_, err = state.GetChannelInfo(s.db, "channel-1")
	s.Require().ErrorIs(err, state.ErrChannelNotFound)
}

func (s *GatewayTestSuite) TestOpenAckRejectsCounterpartyVersionChange() {
	cp := channeltypes.NewCounterparty(remotePort, "channel-8")
	s.Require().NoError(s.gw.OnChanOpenInit(s.ctx(), channeltypes.UNORDERED, "connection-0", "channel-1", cp, packet.Version))

	err := s.gw.OnChanOpenAck(s.ctx(), "channel-1", "ics20-2")
	s.Require().ErrorIs(err, gateway.ErrVersionMismatch)

	// the channel never opened, so sends on it are refused
	info, err := state.GetChannelInfo(s.db, "channel-1")
	s.Require().NoError(err)
	s.Require().Equal(state.StatusNegotiating, info.Status)
}

func (s *GatewayTestSuite) TestOpenTryConfirmFlow() {
	cp := channeltypes.NewCounterparty(remotePort, "channel-8")
	s.Require().NoError(s.gw.OnChanOpenTry(s.ctx(), channeltypes.UNORDERED, "connection-0", "channel-1", cp, packet.Version, packet.Version))
	s.Require().NoError(s.gw.OnChanOpenConfirm(s.ctx(), "channel-1"))

	info, err := state.GetChannelInfo(s.db, "channel-1")
	s.Require().NoError(err)
	s.Require().Equal(state.StatusOpen, info.Status)
	s.Require().Equal(cp, info.Counterparty)
}

func (s *GatewayTestSuite) TestCloseInitRefusedWithEscrowOutstanding() {
	s.send(100)

	err := s.gw.OnChanCloseInit(s.ctx(), channelID)
	s.Require().ErrorIs(err, gateway.ErrChannelClosingNotAllowed)

	info, err := state.GetChannelInfo(s.db, channelID)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusOpen, info.Status)
}

func (s *GatewayTestSuite) TestCloseInitAllowedWhenEscrowIsZero() {
	s.Require().NoError(s.gw.OnChanCloseInit(s.ctx(), channelID))

	info, err := state.GetChannelInfo(s.db, channelID)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusClosing, info.Status)
}

func (s *GatewayTestSuite) TestForcedCloseRetainsAuditRecord() {
	s.send(100)

	// the chain forces the close through; funds stay escrowed
	s.Require().NoError(s.gw.OnChanCloseConfirm(s.ctx(), channelID))

	info, err := state.GetChannelInfo(s.db, channelID)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusClosed, info.Status)
	s.Require().Equal(sdk.NewInt(100), s.outstanding())
}

func (s *GatewayTestSuite) TestCloseConfirmRemovesDrainedChannel() {
	s.Require().NoError(s.gw.OnChanCloseConfirm(s.ctx(), channelID))

	_, err := state.GetChannelInfo(s.db, channelID)
	s.Require().ErrorIs(err, state.ErrChannelNotFound)
}
