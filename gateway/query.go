package gateway

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/plural-labs/escrow-gateway/state"
)

// Queries read committed state only; they never observe a half-applied
// invocation.

// ChannelState returns the escrow ledger entry for (channel, denom).
func (g *Gateway) ChannelState(channelID, denom string) (state.ChannelState, error) {
	if _, err := state.GetChannelInfo(g.db, channelID); err != nil {
		return state.ChannelState{}, err
	}
	return state.GetChannelState(g.db, channelID, denom)
}

// ListChannels returns every recorded channel with its status.
func (g *Gateway) ListChannels() ([]state.ChannelInfo, error) {
	return state.ListChannels(g.db)
}

// IsAllowed returns a contract's allow-list entry, if any.
func (g *Gateway) IsAllowed(contract string) (state.AllowInfo, bool, error) {
	return state.GetAllowInfo(g.db, contract)
}

// ListAllowed returns the full allow list.
func (g *Gateway) ListAllowed() ([]state.AllowedContract, error) {
	return state.ListAllowed(g.db)
}

// Admin returns the current admin address.
func (g *Gateway) Admin() (string, error) {
	return state.GetAdmin(g.db)
}

// CollectedFees returns the commission accumulated for a token
// contract.
func (g *Gateway) CollectedFees(contract string) (sdk.Int, error) {
	return state.GetCollectedFees(g.db, ContractDenom(contract))
}

// ListPending returns every in-flight transfer, including entries
// retained after a failed refund.
func (g *Gateway) ListPending() ([]state.PendingTransfer, error) {
	return state.ListPendingTransfers(g.db)
}
