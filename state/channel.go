package state

import (
	"encoding/json"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	channeltypes "github.com/cosmos/ibc-go/v3/modules/core/04-channel/types"
	dbm "github.com/tendermint/tm-db"
)

// Status tracks a channel through its lifecycle. A channel only carries
// packets while OPEN; CLOSED channels with nonzero outstanding escrow
// are retained as an audit flag.
type Status string

const (
	StatusNegotiating Status = "NEGOTIATING"
	StatusOpen        Status = "OPEN"
	StatusClosing     Status = "CLOSING"
	StatusClosed      Status = "CLOSED"
)

// ChannelInfo is the metadata negotiated during the channel handshake.
// Apart from Status it never changes after the handshake completes.
type ChannelInfo struct {
	ID           string                    `json:"id"`
	Counterparty channeltypes.Counterparty `json:"counterparty"`
	ConnectionID string                    `json:"connection_id"`
	Version      string                    `json:"version"`
	Order        channeltypes.Order        `json:"order"`
	Status       Status                    `json:"status"`
}

// ChannelState is the escrow ledger entry for one denom on one channel.
// Outstanding backs the representation currently held on the
// counterparty side and never goes negative; TotalSent only grows.
type ChannelState struct {
	Outstanding sdk.Int `json:"outstanding"`
	TotalSent   sdk.Int `json:"total_sent"`
}

func newChannelState() ChannelState {
	return ChannelState{
		Outstanding: sdk.ZeroInt(),
		TotalSent:   sdk.ZeroInt(),
	}
}

func GetChannelInfo(kv KVStore, channelID string) (ChannelInfo, error) {
	bz, err := kv.Get(channelInfoKey(channelID))
	if err != nil {
		return ChannelInfo{}, err
	}
	if bz == nil {
		return ChannelInfo{}, sdkerrors.Wrap(ErrChannelNotFound, channelID)
	}
	var info ChannelInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return ChannelInfo{}, err
	}
	return info, nil
}

func SetChannelInfo(kv KVStore, info ChannelInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return kv.Set(channelInfoKey(info.ID), bz)
}

func DeleteChannelInfo(kv KVStore, channelID string) error {
	return kv.Delete(channelInfoKey(channelID))
}

// GetChannelState returns the ledger entry for (channel, denom), or a
// zeroed entry if none has been recorded yet.
func GetChannelState(kv KVStore, channelID, denom string) (ChannelState, error) {
	bz, err := kv.Get(channelStateKey(channelID, denom))
	if err != nil {
		return ChannelState{}, err
	}
	if bz == nil {
		return newChannelState(), nil
	}
	var st ChannelState
	if err := json.Unmarshal(bz, &st); err != nil {
		return ChannelState{}, err
	}
	return st, nil
}

func setChannelState(kv KVStore, channelID, denom string, st ChannelState) error {
	bz, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return kv.Set(channelStateKey(channelID, denom), bz)
}

// DebitChannel escrows amount on (channel, denom): outstanding and
// total_sent both grow by amount.
func DebitChannel(kv KVStore, channelID, denom string, amount sdk.Int) error {
	st, err := GetChannelState(kv, channelID, denom)
	if err != nil {
		return err
	}
	st.Outstanding = st.Outstanding.Add(amount)
	st.TotalSent = st.TotalSent.Add(amount)
	return setChannelState(kv, channelID, denom, st)
}

// CreditChannel releases amount of escrow on (channel, denom). It fails
// if amount exceeds what is outstanding, which keeps the ledger from
// ever going negative.
func CreditChannel(kv KVStore, channelID, denom string, amount sdk.Int) error {
	st, err := GetChannelState(kv, channelID, denom)
	if err != nil {
		return err
	}
	if amount.GT(st.Outstanding) {
		return sdkerrors.Wrapf(ErrInsufficientEscrow, "requested %s, outstanding %s on %s/%s", amount, st.Outstanding, channelID, denom)
	}
	st.Outstanding = st.Outstanding.Sub(amount)
	return setChannelState(kv, channelID, denom, st)
}

// NextSequence returns the sequence number for the next outbound packet
// on the channel and advances the counter. Sequences start at 1.
func NextSequence(kv KVStore, channelID string) (uint64, error) {
	bz, err := kv.Get(sequenceKey(channelID))
	if err != nil {
		return 0, err
	}
	seq := uint64(1)
	if bz != nil {
		seq, err = strconv.ParseUint(string(bz), 10, 64)
		if err != nil {
			return 0, err
		}
	}
	if err := kv.Set(sequenceKey(channelID), []byte(strconv.FormatUint(seq+1, 10))); err != nil {
		return 0, err
	}
	return seq, nil
}

// ListChannels returns every recorded channel, committed state only.
func ListChannels(db dbm.DB) ([]ChannelInfo, error) {
	it, err := dbm.IteratePrefix(db, channelInfoPrefix)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var infos []ChannelInfo
	for ; it.Valid(); it.Next() {
		var info ChannelInfo
		if err := json.Unmarshal(it.Value(), &info); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, it.Error()
}

// ChannelHasOutstanding reports whether any denom on the channel still
// has escrow in flight. It reads committed state and is meant to gate
// voluntary channel closure before the invocation writes anything.
func ChannelHasOutstanding(db dbm.DB, channelID string) (bool, error) {
	it, err := dbm.IteratePrefix(db, channelStateIterPrefix(channelID))
	if err != nil {
		return false, err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var st ChannelState
		if err := json.Unmarshal(it.Value(), &st); err != nil {
			return false, err
		}
		if !st.Outstanding.IsZero() {
			return true, nil
		}
	}
	return false, it.Error()
}
