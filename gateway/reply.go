package gateway

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/plural-labs/escrow-gateway/state"
)

// OnReply delivers the outcome of a deferred refund sub-call in a later
// invocation. A nil replyErr settles the refund and drops the pending
// entry; otherwise the entry is marked refund_failed and retained for
// manual remediation. The acknowledgement that triggered the refund was
// already returned and is never revisited here.
func (g *Gateway) OnReply(ctx Context, id ReplyID, replyErr error) error {
	return g.withTx(func(kv state.KVStore) error {
		p, err := state.GetPendingTransfer(kv, id.ChannelID, id.Sequence)
		if err != nil {
			return err
		}
		if p.Status != state.StatusRefunding {
			return sdkerrors.Wrapf(state.ErrAlreadyResolved, "%s/%d is %s", p.ChannelID, p.Sequence, p.Status)
		}

		if replyErr != nil {
			p.Status = state.StatusRefundFailed
			if err := state.SetPendingTransfer(kv, p); err != nil {
				return err
			}
			emitRefundSettled(p.ChannelID, p.Sequence, p.Denom, p.Amount, replyErr)
			return nil
		}

		if err := state.DeletePendingTransfer(kv, p.ChannelID, p.Sequence); err != nil {
			return err
		}
		emitRefundSettled(p.ChannelID, p.Sequence, p.Denom, p.Amount, nil)
		return nil
	})
}
