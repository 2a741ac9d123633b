package gateway

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/rs/zerolog/log"

	"github.com/plural-labs/escrow-gateway/state"
)

func requireAdmin(kv state.KVStore, sender string) error {
	admin, err := state.GetAdmin(kv)
	if err != nil {
		return err
	}
	if sender != admin {
		return sdkerrors.Wrapf(ErrUnauthorized, "%s is not the admin", sender)
	}
	return nil
}

// SetAllowance adds or updates an allow-list entry. gasLimit overrides
// the configured default for this contract's refund sub-calls; nil
// keeps the default.
func (g *Gateway) SetAllowance(ctx Context, sender, contract string, enabled bool, gasLimit *uint64) error {
	if err := validateAddress(g.cfg.Bech32Prefix, contract); err != nil {
		return sdkerrors.Wrap(err, "contract")
	}
	return g.withTx(func(kv state.KVStore) error {
		if err := requireAdmin(kv, sender); err != nil {
			return err
		}
		return state.SetAllowInfo(kv, contract, state.AllowInfo{Enabled: enabled, GasLimit: gasLimit})
	})
}

// RemoveAllowance drops a contract from the allow list.
func (g *Gateway) RemoveAllowance(ctx Context, sender, contract string) error {
	return g.withTx(func(kv state.KVStore) error {
		if err := requireAdmin(kv, sender); err != nil {
			return err
		}
		return state.DeleteAllowInfo(kv, contract)
	})
}

// ProposeAdmin starts the two-step ownership transfer. The proposal
// takes effect only once the proposed address accepts; re-proposing
// overwrites any earlier, unaccepted proposal.
func (g *Gateway) ProposeAdmin(ctx Context, sender, newAdmin string) error {
	if err := validateAddress(g.cfg.Bech32Prefix, newAdmin); err != nil {
		return sdkerrors.Wrap(err, "proposed admin")
	}
	return g.withTx(func(kv state.KVStore) error {
		if err := requireAdmin(kv, sender); err != nil {
			return err
		}
		return state.SetProposedAdmin(kv, newAdmin)
	})
}

// AcceptAdmin completes the ownership transfer; only the proposed
// address may call it.
func (g *Gateway) AcceptAdmin(ctx Context, sender string) error {
	return g.withTx(func(kv state.KVStore) error {
		proposed, err := state.GetProposedAdmin(kv)
		if err != nil {
			return err
		}
		if proposed == "" || sender != proposed {
			return sdkerrors.Wrapf(ErrUnauthorized, "%s is not the proposed admin", sender)
		}
		if err := state.SetAdmin(kv, proposed); err != nil {
			return err
		}
		if err := state.DeleteProposedAdmin(kv); err != nil {
			return err
		}
		log.Info().Str("admin", proposed).Msg("admin transferred")
		return nil
	})
}

// WithdrawFees pays the accumulated commission for a token contract out
// to the given recipient through a direct sub-call. Admin only.
func (g *Gateway) WithdrawFees(ctx Context, sender, contract, to string) error {
	if err := validateAddress(g.cfg.Bech32Prefix, to); err != nil {
		return sdkerrors.Wrap(err, "recipient")
	}
	return g.withTx(func(kv state.KVStore) error {
		if err := requireAdmin(kv, sender); err != nil {
			return err
		}
		denom := ContractDenom(contract)
		fees, err := state.GetCollectedFees(kv, denom)
		if err != nil {
			return err
		}
		if fees.IsZero() {
			return sdkerrors.Wrap(ErrNoFees, denom)
		}
		if err := state.ResetCollectedFees(kv, denom); err != nil {
			return err
		}
		return g.bank.Transfer(ctx, contract, to, fees)
	})
}
