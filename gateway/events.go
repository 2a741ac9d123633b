package gateway

import (
	metrics "github.com/armon/go-metrics"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog/log"
)

// Completion events are emitted as structured logs; counters mirror
// them for operators that scrape metrics.

func emitSend(channelID string, sequence uint64, denom, sender, receiver string, amount, fee sdk.Int) {
	log.Info().
		Str("channel", channelID).
		Uint64("sequence", sequence).
		Str("denom", denom).
		Str("sender", sender).
		Str("receiver", receiver).
		Str("amount", amount.String()).
		Str("fee", fee.String()).
		Msg("transfer escrowed")
	metrics.IncrCounterWithLabels([]string{"gateway", "send"}, 1, channelLabels(channelID, denom))
}

func emitAckSuccess(channelID string, sequence uint64, denom string, amount sdk.Int) {
	log.Info().
		Str("channel", channelID).
		Uint64("sequence", sequence).
		Str("denom", denom).
		Str("amount", amount.String()).
		Msg("transfer acknowledged")
	metrics.IncrCounterWithLabels([]string{"gateway", "ack", "success"}, 1, channelLabels(channelID, denom))
}

func emitRefundQueued(channelID string, sequence uint64, denom string, amount sdk.Int, reason string) {
	log.Info().
		Str("channel", channelID).
		Uint64("sequence", sequence).
		Str("denom", denom).
		Str("amount", amount.String()).
		Str("reason", reason).
		Msg("refund dispatched")
	metrics.IncrCounterWithLabels([]string{"gateway", "refund", "queued"}, 1, channelLabels(channelID, denom))
}

func emitRefundSettled(channelID string, sequence uint64, denom string, amount sdk.Int, err error) {
	if err == nil {
		log.Info().
			Str("channel", channelID).
			Uint64("sequence", sequence).
			Str("denom", denom).
			Str("amount", amount.String()).
			Msg("refund settled")
		metrics.IncrCounterWithLabels([]string{"gateway", "refund", "settled"}, 1, channelLabels(channelID, denom))
		return
	}
	log.Error().
		Err(err).
		Str("channel", channelID).
		Uint64("sequence", sequence).
		Str("denom", denom).
		Str("amount", amount.String()).
		Msg("refund failed - entry retained for manual remediation")
	metrics.IncrCounterWithLabels([]string{"gateway", "refund", "failed"}, 1, channelLabels(channelID, denom))
}

func emitReceive(channelID string, sequence uint64, denom, receiver string, amount sdk.Int) {
	log.Info().
		Str("channel", channelID).
		Uint64("sequence", sequence).
		Str("denom", denom).
		Str("receiver", receiver).
		Str("amount", amount.String()).
		Msg("inbound transfer released")
	metrics.IncrCounterWithLabels([]string{"gateway", "receive"}, 1, channelLabels(channelID, denom))
}

func channelLabels(channelID, denom string) []metrics.Label {
	return []metrics.Label{
		{Name: "channel", Value: channelID},
		{Name: "denom", Value: denom},
	}
}
