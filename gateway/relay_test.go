package gateway_test

import (
	"errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	clienttypes "github.com/cosmos/ibc-go/v3/modules/core/02-client/types"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"

	"github.com/plural-labs/escrow-gateway/gateway"
	"github.com/plural-labs/escrow-gateway/packet"
	"github.com/plural-labs/escrow-gateway/state"
)

func successAck() []byte {
	return packet.NewResultAck([]byte{1}).GetBytes()
}

func errorAck(msg string) []byte {
	return packet.NewErrorAck(errors.New(msg)).GetBytes()
}

// inboundPacket builds a packet as the counterparty would send it:
// their channel end is the source, ours the destination.
func (s *GatewayTestSuite) inboundPacket(sequence uint64, amount int64, receiver string) channeltypes.Packet {
	data := packet.NewTokenPacketData(gateway.ContractDenom(contractAddr), sdk.NewInt(amount), "cosmos1remotesender", receiver, "")
	return channeltypes.NewPacket(
		data.GetBytes(), sequence,
		remotePort, remoteChan,
		portID, channelID,
		clienttypes.ZeroHeight(), 100,
	)
}

func (s *GatewayTestSuite) TestAckSuccessKeepsEscrow() {
	pkt := s.send(100)

	s.Require().NoError(s.gw.OnAcknowledgementPacket(s.ctx(), pkt, successAck()))

	// escrow still backs the representation on the counterparty side
	s.Require().Equal(sdk.NewInt(100), s.outstanding())

	pending, err := s.gw.ListPending()
	s.Require().NoError(err)
	s.Require().Empty(pending)
}

func (s *GatewayTestSuite) TestAckSuccessIsNotReplayable() {
	pkt := s.send(100)
	s.Require().NoError(s.gw.OnAcknowledgementPacket(s.ctx(), pkt, successAck()))

	err := s.gw.OnAcknowledgementPacket(s.ctx(), pkt, successAck())
	s.Require().ErrorIs(err, state.ErrUnknownPacket)
	s.Require().Equal(sdk.NewInt(100), s.outstanding())
}

func (s *GatewayTestSuite) TestTimeoutRefundsSender() {
	s.send(100)
	pkt2 := s.send(50)
	s.Require().Equal(sdk.NewInt(150), s.outstanding())

	s.Require().NoError(s.gw.OnTimeoutPacket(s.ctx(), pkt2))

	// escrow released, refund dispatched but not yet settled
	s.Require().Equal(sdk.NewInt(100), s.outstanding())
	s.Require().Len(s.mover.deferred, 1)
	refund := s.mover.deferred[0]
	s.Require().Equal(contractAddr, refund.Contract)
	s.Require().Equal(senderAddr, refund.Recipient)
	s.Require().Equal(sdk.NewInt(50), refund.Amount)

	p, err := state.GetPendingTransfer(s.db, channelID, pkt2.Sequence)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusRefunding, p.Status)

	// the deferred sub-call settles in a later invocation
	s.Require().NoError(s.gw.OnReply(s.ctx(), refund.ID, nil))
	_, err = state.GetPendingTransfer(s.db, channelID, pkt2.Sequence)
	s.Require().ErrorIs(err, state.ErrUnknownPacket)
}

func (s *GatewayTestSuite) TestAckErrorRefundsSender() {
	pkt := s.send(75)

	s.Require().NoError(s.gw.OnAcknowledgementPacket(s.ctx(), pkt, errorAck("no funds on destination")))

	s.Require().True(s.outstanding().IsZero())
	s.Require().Len(s.mover.deferred, 1)
	s.Require().Equal(sdk.NewInt(75), s.mover.deferred[0].Amount)
}

func (s *GatewayTestSuite) TestResolvingTwiceFails() {
	pkt := s.send(100)
	s.Require().NoError(s.gw.OnTimeoutPacket(s.ctx(), pkt))

	err := s.gw.OnTimeoutPacket(s.ctx(), pkt)
	s.Require().ErrorIs(err, state.ErrAlreadyResolved)

	err = s.gw.OnAcknowledgementPacket(s.ctx(), pkt, errorAck("late ack"))
	s.Require().ErrorIs(err, state.ErrAlreadyResolved)

	// no double credit, no second refund
	s.Require().True(s.outstanding().IsZero())
	s.Require().Len(s.mover.deferred, 1)
}

func (s *GatewayTestSuite) TestUnknownSequenceFails() {
	pkt := s.send(100)
	unknown := pkt
	unknown.Sequence = 99

	s.Require().ErrorIs(s.gw.OnTimeoutPacket(s.ctx(), unknown), state.ErrUnknownPacket)
	s.Require().Equal(sdk.NewInt(100), s.outstanding())
}

func (s *GatewayTestSuite) TestRefundDispatchFailureKeepsProtocolAlive() {
	pkt := s.send(100)
	s.mover.submitErr = errors.New("token contract out of gas")

	// the timeout handler must still succeed
	s.Require().NoError(s.gw.OnTimeoutPacket(s.ctx(), pkt))

	s.Require().True(s.outstanding().IsZero())
	p, err := state.GetPendingTransfer(s.db, channelID, pkt.Sequence)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusRefundFailed, p.Status)
}

func (s *GatewayTestSuite) TestReplyFailureRetainsEntry() {
	pkt := s.send(100)
	s.Require().NoError(s.gw.OnTimeoutPacket(s.ctx(), pkt))
	id := s.mover.deferred[0].ID

	s.Require().NoError(s.gw.OnReply(s.ctx(), id, errors.New("recipient frozen")))

	p, err := state.GetPendingTransfer(s.db, channelID, pkt.Sequence)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusRefundFailed, p.Status)

	// a failed refund is settled: further replies are a logic error
	s.Require().ErrorIs(s.gw.OnReply(s.ctx(), id, nil), state.ErrAlreadyResolved)
}

func (s *GatewayTestSuite) TestReplyForUnknownIDFails() {
	err := s.gw.OnReply(s.ctx(), gateway.ReplyID{ChannelID: channelID, Sequence: 7}, nil)
	s.Require().ErrorIs(err, state.ErrUnknownPacket)
}

func (s *GatewayTestSuite) TestRecvReleasesEscrow() {
	s.send(100)

	ack := s.gw.OnRecvPacket(s.ctx(), s.inboundPacket(1, 30, receiverAddr))
	s.Require().True(ack.Success())

	s.Require().Equal(sdk.NewInt(70), s.outstanding())
	s.Require().Len(s.mover.transfers, 1)
	payout := s.mover.transfers[0]
	s.Require().Equal(contractAddr, payout.Contract)
	s.Require().Equal(receiverAddr, payout.Recipient)
	s.Require().Equal(sdk.NewInt(30), payout.Amount)
}

func (s *GatewayTestSuite) TestRecvBeyondOutstandingIsRejected() {
	s.send(100)
	ack := s.gw.OnRecvPacket(s.ctx(), s.inboundPacket(1, 30, receiverAddr))
	s.Require().True(ack.Success())

	ack = s.gw.OnRecvPacket(s.ctx(), s.inboundPacket(2, 1000, receiverAddr))
	s.Require().False(ack.Success())
	s.Require().Contains(ack.Error, "insufficient escrow")

	// nothing moved
	s.Require().Equal(sdk.NewInt(70), s.outstanding())
	s.Require().Len(s.mover.transfers, 1)
}

func (s *GatewayTestSuite) TestRecvPayoutFailureDiscardsCredit() {
	s.send(100)
	s.mover.transferErr = errors.New("token contract paused")

	ack := s.gw.OnRecvPacket(s.ctx(), s.inboundPacket(1, 30, receiverAddr))
	s.Require().False(ack.Success())

	// the credit was rolled back together with the failed payout
	s.Require().Equal(sdk.NewInt(100), s.outstanding())
}

func (s *GatewayTestSuite) TestRecvRejectsMalformedPayloads() {
	s.send(100)

	pkt := s.inboundPacket(1, 30, receiverAddr)
	pkt.Data = []byte(`{"denom":"cw20:x","amount":"NaN"}`)
	ack := s.gw.OnRecvPacket(s.ctx(), pkt)
	s.Require().False(ack.Success())

	// denom that names no local contract
	data := packet.NewTokenPacketData("uatom", sdk.NewInt(5), "cosmos1s", receiverAddr, "")
	pkt.Data = data.GetBytes()
	ack = s.gw.OnRecvPacket(s.ctx(), pkt)
	s.Require().False(ack.Success())

	// receiver on the wrong chain
	ack = s.gw.OnRecvPacket(s.ctx(), s.inboundPacket(2, 5, "cosmos1remote"))
	s.Require().False(ack.Success())

	s.Require().Equal(sdk.NewInt(100), s.outstanding())
	s.Require().Empty(s.mover.transfers)
}

func (s *GatewayTestSuite) TestMalformedAckAbortsHandling() {
	pkt := s.send(100)

	err := s.gw.OnAcknowledgementPacket(s.ctx(), pkt, []byte(`{}`))
	s.Require().ErrorIs(err, packet.ErrMalformedPacket)

	// the transfer is still awaiting its real acknowledgement
	p, err := state.GetPendingTransfer(s.db, channelID, pkt.Sequence)
	s.Require().NoError(err)
	s.Require().Equal(state.StatusAwaitingAck, p.Status)
}
