package state

import (
	"encoding/json"

	dbm "github.com/tendermint/tm-db"
)

// AllowInfo is the capability record for one token contract: whether it
// may be bridged and the gas budget its refund sub-calls get.
type AllowInfo struct {
	Enabled  bool    `json:"enabled"`
	GasLimit *uint64 `json:"gas_limit,omitempty"`
}

// AllowedContract pairs an allow-list entry with its contract address
// for listing.
type AllowedContract struct {
	Contract string    `json:"contract"`
	Info     AllowInfo `json:"info"`
}

func GetAllowInfo(kv KVStore, contract string) (AllowInfo, bool, error) {
	bz, err := kv.Get(allowKey(contract))
	if err != nil {
		return AllowInfo{}, false, err
	}
	if bz == nil {
		return AllowInfo{}, false, nil
	}
	var info AllowInfo
	if err := json.Unmarshal(bz, &info); err != nil {
		return AllowInfo{}, false, err
	}
	return info, true, nil
}

func SetAllowInfo(kv KVStore, contract string, info AllowInfo) error {
	bz, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return kv.Set(allowKey(contract), bz)
}

func DeleteAllowInfo(kv KVStore, contract string) error {
	return kv.Delete(allowKey(contract))
}

// ListAllowed returns every allow-list entry, committed state only.
func ListAllowed(db dbm.DB) ([]AllowedContract, error) {
	it, err := dbm.IteratePrefix(db, allowPrefix)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var entries []AllowedContract
	for ; it.Valid(); it.Next() {
		var info AllowInfo
		if err := json.Unmarshal(it.Value(), &info); err != nil {
			return nil, err
		}
		entries = append(entries, AllowedContract{
			Contract: string(it.Key()[len(allowPrefix):]),
			Info:     info,
		})
	}
	return entries, it.Error()
}
