package state

// The admin is a single persisted address. Every mutation goes through
// the explicit two-step transfer on the gateway; there is no other
// write path.

func GetAdmin(kv KVStore) (string, error) {
	bz, err := kv.Get(adminKey)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

func SetAdmin(kv KVStore, address string) error {
	return kv.Set(adminKey, []byte(address))
}

func GetProposedAdmin(kv KVStore) (string, error) {
	bz, err := kv.Get(proposedAdminKey)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

func SetProposedAdmin(kv KVStore, address string) error {
	return kv.Set(proposedAdminKey, []byte(address))
}

func DeleteProposedAdmin(kv KVStore) error {
	return kv.Delete(proposedAdminKey)
}
