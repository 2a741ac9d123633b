package state

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	dbm "github.com/tendermint/tm-db"
)

// ResolutionStatus tracks where an in-flight transfer is in its
// lifecycle.
type ResolutionStatus string

const (
	// StatusAwaitingAck: the packet is out, no ack or timeout seen yet.
	StatusAwaitingAck ResolutionStatus = "awaiting_ack"
	// StatusRefunding: an error ack or timeout arrived and a deferred
	// refund sub-call is in flight.
	StatusRefunding ResolutionStatus = "refunding"
	// StatusRefundFailed: the refund sub-call failed. The record is kept
	// for manual remediation, never retried.
	StatusRefundFailed ResolutionStatus = "refund_failed"
)

// PendingTransfer is the in-flight context for one outbound packet,
// keyed by (channel, sequence).
type PendingTransfer struct {
	ChannelID string           `json:"channel_id"`
	Sequence  uint64           `json:"sequence"`
	Denom     string           `json:"denom"`
	Amount    sdk.Int          `json:"amount"`
	Contract  string           `json:"contract"`
	Sender    string           `json:"sender"`
	Status    ResolutionStatus `json:"status"`
}

// CreatePendingTransfer records a new in-flight transfer. Creating a
// second entry under the same key is a logic error and is surfaced, not
// overwritten.
func CreatePendingTransfer(kv KVStore, p PendingTransfer) error {
	key := pendingKey(p.ChannelID, p.Sequence)
	existing, err := kv.Get(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return sdkerrors.Wrapf(ErrAlreadyPending, "%s/%d", p.ChannelID, p.Sequence)
	}
	bz, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return kv.Set(key, bz)
}

func GetPendingTransfer(kv KVStore, channelID string, sequence uint64) (PendingTransfer, error) {
	bz, err := kv.Get(pendingKey(channelID, sequence))
	if err != nil {
		return PendingTransfer{}, err
	}
	if bz == nil {
		return PendingTransfer{}, sdkerrors.Wrapf(ErrUnknownPacket, "%s/%d", channelID, sequence)
	}
	var p PendingTransfer
	if err := json.Unmarshal(bz, &p); err != nil {
		return PendingTransfer{}, err
	}
	return p, nil
}

// SetPendingTransfer overwrites an existing entry, used for status
// transitions only.
func SetPendingTransfer(kv KVStore, p PendingTransfer) error {
	bz, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return kv.Set(pendingKey(p.ChannelID, p.Sequence), bz)
}

func DeletePendingTransfer(kv KVStore, channelID string, sequence uint64) error {
	return kv.Delete(pendingKey(channelID, sequence))
}

// ListPendingTransfers returns every in-flight transfer, committed
// state only.
func ListPendingTransfers(db dbm.DB) ([]PendingTransfer, error) {
	it, err := dbm.IteratePrefix(db, pendingPrefix)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var pending []PendingTransfer
	for ; it.Valid(); it.Next() {
		var p PendingTransfer
		if err := json.Unmarshal(it.Value(), &p); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, it.Error()
}
