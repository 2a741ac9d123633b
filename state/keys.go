package state

import (
	"fmt"
)

// Key layout. Every record lives in one database under a short prefix;
// composite keys join their parts with '/'.
var (
	channelInfoPrefix  = []byte("info/")
	channelStatePrefix = []byte("state/")
	allowPrefix        = []byte("allow/")
	pendingPrefix      = []byte("pending/")
	feePrefix          = []byte("fees/")
	sequencePrefix     = []byte("seq/")

	adminKey         = []byte("admin")
	proposedAdminKey = []byte("admin/proposed")
)

func channelInfoKey(channelID string) []byte {
	return append(channelInfoPrefix, channelID...)
}

func channelStateKey(channelID, denom string) []byte {
	return []byte(fmt.Sprintf("%s%s/%s", channelStatePrefix, channelID, denom))
}

func channelStateIterPrefix(channelID string) []byte {
	return []byte(fmt.Sprintf("%s%s/", channelStatePrefix, channelID))
}

func allowKey(contract string) []byte {
	return append(allowPrefix, contract...)
}

func pendingKey(channelID string, sequence uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%d", pendingPrefix, channelID, sequence))
}

func feeKey(denom string) []byte {
	return append(feePrefix, denom...)
}

func sequenceKey(channelID string) []byte {
	return append(sequencePrefix, channelID...)
}
