package gateway_test

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"

	"github.com/plural-labs/escrow-gateway/gateway"
)

func (s *GatewayTestSuite) TestAllowListIsAdminGated() {
	err := s.gw.SetAllowance(s.ctx(), strangerAddr, contractAddr, true, nil)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)

	err = s.gw.RemoveAllowance(s.ctx(), strangerAddr, contractAddr)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)

	// the entry seeded in SetupTest is untouched
	info, found, err := s.gw.IsAllowed(contractAddr)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Require().True(info.Enabled)
}

func (s *GatewayTestSuite) TestAllowListGasLimitOverride() {
	limit := uint64(300000)
	s.Require().NoError(s.gw.SetAllowance(s.ctx(), adminAddr, contractAddr, true, &limit))

	pkt := s.send(40)
	s.Require().NoError(s.gw.OnTimeoutPacket(s.ctx(), pkt))

	s.Require().Len(s.mover.deferred, 1)
	s.Require().Equal(limit, s.mover.deferred[0].GasLimit)
}

func (s *GatewayTestSuite) TestRemoveAllowanceStopsSends() {
	s.Require().NoError(s.gw.RemoveAllowance(s.ctx(), adminAddr, contractAddr))

	_, err := s.gw.OnTokenReceived(s.ctx(), contractAddr, senderAddr, sdk.NewInt(1), gateway.TransferMsg{
		ChannelID:     channelID,
		RemoteAddress: "cosmos1r",
	})
	s.Require().ErrorIs(err, gateway.ErrNotAllowed)
}

func (s *GatewayTestSuite) TestAdminTransferIsTwoStep() {
	// only the admin may propose
	err := s.gw.ProposeAdmin(s.ctx(), strangerAddr, strangerAddr)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)

	s.Require().NoError(s.gw.ProposeAdmin(s.ctx(), adminAddr, strangerAddr))

	// proposing alone changes nothing
	admin, err := s.gw.Admin()
	s.Require().NoError(err)
	s.Require().Equal(adminAddr, admin)

	// only the proposed address may accept
	err = s.gw.AcceptAdmin(s.ctx(), senderAddr)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)

	s.Require().NoError(s.gw.AcceptAdmin(s.ctx(), strangerAddr))
	admin, err = s.gw.Admin()
	s.Require().NoError(err)
	s.Require().Equal(strangerAddr, admin)

	// the old admin has lost its rights
	err = s.gw.SetAllowance(s.ctx(), adminAddr, contractAddr, true, nil)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)
}

func (s *GatewayTestSuite) TestAcceptWithoutProposalFails() {
	err := s.gw.AcceptAdmin(s.ctx(), strangerAddr)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)
}

func (s *GatewayTestSuite) TestCommissionRetainedOnSend() {
	rate, err := decimal.NewFromString("0.1")
	s.Require().NoError(err)
	s.setup(rate)

	pkt := s.send(100)

	// 10% stays behind, 90 goes over the wire and into escrow
	s.Require().Equal(sdk.NewInt(90), s.outstanding())
	fees, err := s.gw.CollectedFees(contractAddr)
	s.Require().NoError(err)
	s.Require().Equal(sdk.NewInt(10), fees)

	var raw map[string]interface{}
	s.Require().NoError(json.Unmarshal(pkt.GetData(), &raw))
	s.Require().Equal("90", raw["amount"])
}

func (s *GatewayTestSuite) TestWithdrawFees() {
	rate, err := decimal.NewFromString("0.1")
	s.Require().NoError(err)
	s.setup(rate)
	s.send(100)

	err = s.gw.WithdrawFees(s.ctx(), strangerAddr, contractAddr, adminAddr)
	s.Require().ErrorIs(err, gateway.ErrUnauthorized)

	s.Require().NoError(s.gw.WithdrawFees(s.ctx(), adminAddr, contractAddr, adminAddr))
	s.Require().Len(s.mover.transfers, 1)
	s.Require().Equal(sdk.NewInt(10), s.mover.transfers[0].Amount)
	s.Require().Equal(adminAddr, s.mover.transfers[0].Recipient)

	// the pot is empty now
	err = s.gw.WithdrawFees(s.ctx(), adminAddr, contractAddr, adminAddr)
	s.Require().ErrorIs(err, gateway.ErrNoFees)
}

func (s *GatewayTestSuite) TestStoredAdminSurvivesReconfiguration() {
	s.Require().NoError(s.gw.ProposeAdmin(s.ctx(), adminAddr, strangerAddr))
	s.Require().NoError(s.gw.AcceptAdmin(s.ctx(), strangerAddr))

	// a restart with the old config must not reinstate the old admin
	gw, err := gateway.New(gateway.Config{
		PortID:         portID,
		Admin:          adminAddr,
		Bech32Prefix:   prefix,
		DefaultTimeout: 600,
	}, s.db, s.mover)
	s.Require().NoError(err)

	admin, err := gw.Admin()
	s.Require().NoError(err)
	s.Require().Equal(strangerAddr, admin)
}
