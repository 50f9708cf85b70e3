package dto

import "agrocalc-be/pkg/funnel"

// CalculatorMessageRequest is one relayed user utterance: free text or an
// action token with its optional argument.
type CalculatorMessageRequest struct {
	Username string `json:"username" validate:"required"`
	Text     string `json:"text"`
	Action   string `json:"action"`
	Value    string `json:"value"`
}

type CalculatorReplyResponse struct {
	State      string                  `json:"state"`
	MessageKey string                  `json:"message_key"`
	Text       string                  `json:"text"`
	Options    []funnel.Option         `json:"options,omitempty"`
	Cards      []funnel.ProductCard    `json:"cards,omitempty"`
	Summary    *funnel.CheckoutSummary `json:"summary,omitempty"`
}

func NewCalculatorReplyResponse(reply *funnel.Reply) *CalculatorReplyResponse {
	return &CalculatorReplyResponse{
		State:      string(reply.State),
		MessageKey: reply.MessageKey,
		Text:       reply.Text,
		Options:    reply.Options,
		Cards:      reply.Cards,
		Summary:    reply.Summary,
	}
}
