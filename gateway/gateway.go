package gateway

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	dbm "github.com/tendermint/tm-db"

	"github.com/plural-labs/escrow-gateway/state"
)

// Context carries the host-supplied block environment for one
// invocation.
type Context struct {
	BlockHeight uint64
	BlockTime   time.Time
}

// ReplyID correlates a deferred sub-call with the pending transfer that
// issued it.
type ReplyID struct {
	ChannelID string
	Sequence  uint64
}

// TokenMover issues token-movement sub-calls against the host's token
// contracts.
//
// Transfer is synchronous: an error from it aborts the invocation that
// issued it, and nothing that invocation wrote is committed.
//
// SubmitTransfer is deferred: it only dispatches, and the host reports
// the eventual outcome through Gateway.OnReply carrying the same id.
// gasLimit caps the sub-call's execution; zero means uncapped.
type TokenMover interface {
	Transfer(ctx Context, contract, recipient string, amount sdk.Int) error
	SubmitTransfer(ctx Context, id ReplyID, contract, recipient string, amount sdk.Int, gasLimit uint64) error
}

// Gateway escrows locally issued tokens and relays transfer
// instructions over IBC. Every exported entrypoint is one invocation:
// it either commits all of its writes or none of them.
type Gateway struct {
	cfg  Config
	db   dbm.DB
	bank TokenMover
}

// New wires a gateway over its database and token mover. The mover may
// be nil for a query-only instance. On first boot the configured admin
// is persisted; afterwards the stored record is authoritative and only
// changes through the two-step transfer.
func New(cfg Config, db dbm.DB, bank TokenMover) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	admin, err := state.GetAdmin(db)
	if err != nil {
		return nil, err
	}
	if admin == "" {
		if err := state.SetAdmin(db, cfg.Admin); err != nil {
			return nil, err
		}
	}
	return &Gateway{cfg: cfg, db: db, bank: bank}, nil
}

// withTx runs fn against a buffered view of the database, committing
// only if fn succeeds. This is the all-or-nothing boundary every
// entrypoint runs inside.
func (g *Gateway) withTx(fn func(kv state.KVStore) error) error {
	tx := state.NewTx(g.db)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func validateAddress(prefix, address string) error {
	hrp, _, err := bech32.DecodeAndConvert(address)
	if err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "%s: %s", address, err)
	}
	if hrp != prefix {
		return sdkerrors.Wrapf(ErrInvalidAddress, "%s: expected prefix %q, got %q", address, prefix, hrp)
	}
	return nil
}
