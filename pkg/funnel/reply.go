package funnel

import (
	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"

	"github.com/google/uuid"
)

// Input is one raw user utterance relayed by the transport: either free text
// or an action token with an optional argument (an environment value, a
// target or product id).
type Input struct {
	Text   string
	Action string
	Value  string
}

func (in Input) IsAction(token string) bool {
	return in.Action == token
}

// Option is a button offered to the user.
type Option struct {
	Label  string `json:"label"`
	Action string `json:"action,omitempty"`
	Value  string `json:"value,omitempty"`
}

// ProductCard is one paginated browse item. Action is the valid next action
// for this product (add or remove); Remaining is non-zero only on the last
// card of a page that has more items behind it.
type ProductCard struct {
	Id              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	TargetTag       string    `json:"target_tag,omitempty"`
	PhotoRef        string    `json:"photo_ref,omitempty"`
	DescriptionLink string    `json:"description_link,omitempty"`
	Action          string    `json:"action"`
	Remaining       int       `json:"remaining,omitempty"`
	ShowBack        bool      `json:"show_back,omitempty"`
}

// Reply is the machine's structured answer: the next prompt, its buttons and
// any product cards or checkout summary to render. The transport owns
// formatting and localization; MessageKey is stable across languages.
type Reply struct {
	State      State            `json:"state"`
	MessageKey string           `json:"message_key"`
	Text       string           `json:"text"`
	Options    []Option         `json:"options,omitempty"`
	Cards      []ProductCard    `json:"cards,omitempty"`
	Summary    *CheckoutSummary `json:"summary,omitempty"`
}

func newReply(state State, messageKey string) *Reply {
	return &Reply{
		State:      state,
		MessageKey: messageKey,
		Text:       constant.MessageText(messageKey),
	}
}

func (r *Reply) withOptions(options ...Option) *Reply {
	r.Options = append(r.Options, options...)
	return r
}

// CheckoutSummary lists the selected products grouped by environment, then
// by base category and target tag inside each environment.
type CheckoutSummary struct {
	Groups []EnvironmentGroup `json:"groups"`
}

type EnvironmentGroup struct {
	Environment string           `json:"environment"`
	Sections    []SummarySection `json:"sections"`
}

type SummarySection struct {
	Label    string   `json:"label"`
	Products []string `json:"products"`
}

// buildCheckoutSummary walks the selection in insertion order and buckets it
// the way the checkout screen renders: one block per environment, base lines
// first, then target tags.
func buildCheckoutSummary(selected []*entity.Product) *CheckoutSummary {
	var envOrder []string
	byEnv := make(map[string][]*entity.Product)
	for _, p := range selected {
		if _, seen := byEnv[p.Environment]; !seen {
			envOrder = append(envOrder, p.Environment)
		}
		byEnv[p.Environment] = append(byEnv[p.Environment], p)
	}

	summary := &CheckoutSummary{}
	for _, env := range envOrder {
		group := EnvironmentGroup{Environment: env}

		var labelOrder []string
		byLabel := make(map[string][]string)
		appendUnder := func(label string, p *entity.Product) {
			if _, seen := byLabel[label]; !seen {
				labelOrder = append(labelOrder, label)
			}
			byLabel[label] = append(byLabel[label], p.BrandName+" - "+p.Name)
		}

		for _, p := range byEnv[env] {
			if p.BaseCategory != "" {
				appendUnder("base "+p.BaseCategory, p)
			}
		}
		for _, p := range byEnv[env] {
			if p.TargetTag != "" {
				appendUnder(p.TargetTag, p)
			}
		}

		for _, label := range labelOrder {
			group.Sections = append(group.Sections, SummarySection{
				Label:    label,
				Products: byLabel[label],
			})
		}
		summary.Groups = append(summary.Groups, group)
	}
	return summary
}
