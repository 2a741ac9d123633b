package state

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetCollectedFees returns the commission accumulated for a denom, zero
// if none has been collected.
func GetCollectedFees(kv KVStore, denom string) (sdk.Int, error) {
	bz, err := kv.Get(feeKey(denom))
	if err != nil {
		return sdk.Int{}, err
	}
	if bz == nil {
		return sdk.ZeroInt(), nil
	}
	var fees sdk.Int
	if err := json.Unmarshal(bz, &fees); err != nil {
		return sdk.Int{}, err
	}
	return fees, nil
}

func AddCollectedFees(kv KVStore, denom string, amount sdk.Int) error {
	fees, err := GetCollectedFees(kv, denom)
	if err != nil {
		return err
	}
	bz, err := json.Marshal(fees.Add(amount))
	if err != nil {
		return err
	}
	return kv.Set(feeKey(denom), bz)
}

func ResetCollectedFees(kv KVStore, denom string) error {
	return kv.Delete(feeKey(denom))
}
