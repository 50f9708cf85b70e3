package funnel

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/pkg/apperr"

	"github.com/google/uuid"
)

// CatalogSource is the catalog read path the machine depends on. The machine
// queries it once per session to seed the candidate set, plus point lookups
// for targets and products referenced by action tokens.
type CatalogSource interface {
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListTargets(ctx context.Context) ([]*entity.Target, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error)
}

type handlerFunc func(ctx context.Context, sess *Session, in Input) (*Reply, error)

// Machine drives the funnel. One Handle call validates the input against the
// current state, applies the state's mutation on success and computes the
// next prompt; invalid input re-emits the same prompt without mutating the
// session. Only collaborator failures surface as errors.
type Machine struct {
	catalog CatalogSource
	table   map[State]handlerFunc
}

func NewMachine(catalog CatalogSource) *Machine {
	m := &Machine{catalog: catalog}
	m.table = map[State]handlerFunc{
		StateAwaitingLanguage:       m.handleLanguage,
		StateAwaitingEnvironment:    m.handleEnvironment,
		StateAwaitingFilterChoice:   m.handleFilterChoice,
		StateAwaitingTarget:         m.handleTarget,
		StateAwaitingBrowseAction:   m.handleBrowse,
		StateAwaitingCheckoutAction: m.handleCheckout,
		StateAwaitingVolume:         m.handleVolume,
		StateAwaitingOS:             m.handleOS,
		StateAwaitingStartDate:      m.handleStartDate,
		StateAwaitingEmail:          m.handleEmail,
		StateDone:                   m.handleDone,
	}
	return m
}

func (m *Machine) Handle(ctx context.Context, sess *Session, in Input) (*Reply, error) {
	if sess.State == "" {
		sess.State = StateAwaitingLanguage
	}

	// Cancel is valid from any state.
	if in.IsAction(constant.ActionCancel) {
		sess.Cancel()
		return newReply(StateDone, constant.MsgStop), nil
	}

	handler, known := m.table[sess.State]
	if !known {
		// Total table; an unknown state can only mean corrupted session data.
		sess.Restart()
		return m.languagePrompt(), nil
	}
	return handler(ctx, sess, in)
}

// --- prompts ---

func (m *Machine) languagePrompt() *Reply {
	r := newReply(StateAwaitingLanguage, constant.MsgSelectLanguage)
	for _, lang := range constant.UserLanguages {
		r.withOptions(Option{Label: lang, Value: lang})
	}
	return r
}

func (m *Machine) environmentPrompt() *Reply {
	r := newReply(StateAwaitingEnvironment, constant.MsgSelectEnvironment)
	for _, env := range constant.ProductEnvironments {
		r.withOptions(Option{Label: env, Value: env})
	}
	return r.withOptions(Option{Label: "Skip", Action: constant.ActionSkip})
}

func (m *Machine) filterPrompt() *Reply {
	return newReply(StateAwaitingFilterChoice, constant.MsgSelectFilter).withOptions(
		Option{Label: "Vega base", Action: constant.ActionSelectBase, Value: constant.VegaBaseCategory},
		Option{Label: "Bloom base", Action: constant.ActionSelectBase, Value: constant.BloomBaseCategory},
		Option{Label: "Additives", Action: constant.ActionListTargets},
		Option{Label: "Skip", Action: constant.ActionSkip},
		Option{Label: "Checkout", Action: constant.ActionOpenCheckout},
	)
}

func (m *Machine) targetPrompt(ctx context.Context, sess *Session) (*Reply, error) {
	targets, err := m.catalog.ListTargets(ctx)
	if err != nil {
		return nil, apperr.Collaborator("listing targets", err)
	}

	r := newReply(StateAwaitingTarget, constant.MsgSelectTarget)
	for _, target := range targets {
		count := 0
		for _, p := range sess.Candidates.Items() {
			if p.TargetId != nil && *p.TargetId == target.Id {
				count++
			}
		}
		r.withOptions(Option{
			Label:  "#" + target.Tag + " (" + strconv.Itoa(count) + ")",
			Action: constant.ActionSelectTarget,
			Value:  target.Id.String(),
		})
	}
	return r.withOptions(Option{Label: "Skip", Action: constant.ActionSkip}), nil
}

func (m *Machine) volumePrompt() *Reply {
	return newReply(StateAwaitingVolume, constant.MsgEnterVolume)
}

func (m *Machine) osPrompt() *Reply {
	r := newReply(StateAwaitingOS, constant.MsgSelectOS)
	for _, os := range constant.UserOSClasses {
		r.withOptions(Option{Label: os, Value: os})
	}
	return r
}

func (m *Machine) startDatePrompt() *Reply {
	return newReply(StateAwaitingStartDate, constant.MsgEnterStartDate)
}

func (m *Machine) emailPrompt() *Reply {
	return newReply(StateAwaitingEmail, constant.MsgEnterEmail)
}

func (m *Machine) checkoutReply(sess *Session) *Reply {
	r := newReply(StateAwaitingCheckoutAction, constant.MsgCheckout)
	r.Summary = buildCheckoutSummary(sess.Selection.Items())
	return r.withOptions(
		Option{Label: "Back", Action: constant.ActionOpenFilters},
		Option{Label: "Edit", Action: constant.ActionEditProducts},
		Option{Label: "Create table", Action: constant.ActionConfirmOrder},
	)
}

// browseReply renders the current five-item page of the candidate set (or of
// the selection set while editing from checkout). The last card of a page
// with more behind it carries the remaining count for the show-more button.
func (m *Machine) browseReply(sess *Session, messageKey string) *Reply {
	source := sess.Candidates.Items()
	emptyKey := constant.MsgNothingFound
	if sess.BrowsingSelection {
		source = sess.Selection.Items()
		emptyKey = constant.MsgNoUserProducts
	}

	if len(source) == 0 {
		return newReply(StateAwaitingBrowseAction, emptyKey).withOptions(
			Option{Label: "Filters", Action: constant.ActionOpenFilters},
		)
	}

	if sess.BrowseOffset >= len(source) {
		sess.BrowseOffset = 0
	}
	end := sess.BrowseOffset + constant.BrowsePageSize
	if end > len(source) {
		end = len(source)
	}
	page := source[sess.BrowseOffset:end]
	remaining := len(source) - end

	r := newReply(StateAwaitingBrowseAction, messageKey)
	for i, p := range page {
		card := ProductCard{
			Id:              p.Id,
			Title:           p.BrandName + " - " + p.Name,
			TargetTag:       p.TargetTag,
			PhotoRef:        p.PhotoRef,
			DescriptionLink: p.DescriptionLink,
			Action:          sess.Selection.ToggleAction(p.Id),
		}
		if i == len(page)-1 {
			card.Remaining = remaining
			card.ShowBack = true
		}
		r.Cards = append(r.Cards, card)
	}
	return r.withOptions(
		Option{Label: "Filters", Action: constant.ActionOpenFilters},
		Option{Label: "Checkout", Action: constant.ActionOpenCheckout},
	)
}

// --- state handlers ---

func (m *Machine) handleLanguage(_ context.Context, sess *Session, in Input) (*Reply, error) {
	choice := strings.ToUpper(strings.TrimSpace(firstNonEmpty(in.Value, in.Text)))
	for _, lang := range constant.UserLanguages {
		if choice == lang {
			sess.Language = lang
			sess.State = StateAwaitingEnvironment
			return m.environmentPrompt(), nil
		}
	}
	return m.languagePrompt(), nil
}

func (m *Machine) handleEnvironment(ctx context.Context, sess *Session, in Input) (*Reply, error) {
	if err := m.ensureSeeded(ctx, sess); err != nil {
		return nil, err
	}

	if in.IsAction(constant.ActionSkip) {
		sess.State = StateAwaitingFilterChoice
		return m.filterPrompt(), nil
	}

	env := strings.ToLower(strings.TrimSpace(firstNonEmpty(in.Value, in.Text)))
	if !contains(constant.ProductEnvironments, env) {
		return m.environmentPrompt(), nil
	}

	if err := sess.Candidates.Narrow(func(p *entity.Product) bool {
		return p.Environment == env
	}); err != nil {
		// Catalog has nothing for this environment; the stage has to be
		// restarted (or the funnel cancelled).
		return newReply(StateAwaitingEnvironment, constant.MsgRestartFilters), nil
	}

	sess.State = StateAwaitingFilterChoice
	return m.filterPrompt(), nil
}

func (m *Machine) handleFilterChoice(ctx context.Context, sess *Session, in Input) (*Reply, error) {
	if err := m.ensureSeeded(ctx, sess); err != nil {
		return nil, err
	}

	switch {
	case in.IsAction(constant.ActionSelectBase):
		base := in.Value
		if !contains(constant.ProductBaseCategories, base) {
			return m.filterPrompt(), nil
		}
		if err := sess.Candidates.Narrow(func(p *entity.Product) bool {
			return p.BaseCategory == base
		}); err != nil {
			return newReply(StateAwaitingFilterChoice, constant.MsgRestartFilters), nil
		}
		return m.enterBrowse(sess), nil

	case in.IsAction(constant.ActionListTargets):
		reply, err := m.targetPrompt(ctx, sess)
		if err != nil {
			return nil, err
		}
		sess.State = StateAwaitingTarget
		return reply, nil

	case in.IsAction(constant.ActionOpenCheckout):
		if sess.Selection.Len() == 0 {
			return newReply(StateAwaitingFilterChoice, constant.MsgNoUserProducts), nil
		}
		sess.State = StateAwaitingCheckoutAction
		return m.checkoutReply(sess), nil

	case in.IsAction(constant.ActionSkip):
		return m.enterBrowse(sess), nil

	case strings.TrimSpace(in.Text) != "":
		if err := sess.Candidates.Search(in.Text); err != nil {
			// Failed search never mutates the candidate set.
			return newReply(StateAwaitingFilterChoice, constant.MsgNothingFound), nil
		}
		return m.enterBrowse(sess), nil
	}

	return m.filterPrompt(), nil
}

func (m *Machine) handleTarget(ctx context.Context, sess *Session, in Input) (*Reply, error) {
	if in.IsAction(constant.ActionSkip) {
		return m.enterBrowse(sess), nil
	}

	if in.IsAction(constant.ActionSelectTarget) {
		targetId, err := uuid.Parse(in.Value)
		if err != nil {
			reply, promptErr := m.targetPrompt(ctx, sess)
			if promptErr != nil {
				return nil, promptErr
			}
			return reply, nil
		}

		target, err := m.catalog.GetTarget(ctx, targetId)
		if err != nil {
			return nil, apperr.Collaborator("target lookup", err)
		}
		if target == nil {
			// The referenced tag no longer exists; restart this sub-flow.
			sess.State = StateAwaitingFilterChoice
			return newReply(StateAwaitingFilterChoice, constant.MsgRestartFilters), nil
		}

		if err := sess.Candidates.Narrow(func(p *entity.Product) bool {
			return p.TargetId != nil && *p.TargetId == target.Id
		}); err != nil {
			sess.State = StateAwaitingFilterChoice
			return newReply(StateAwaitingFilterChoice, constant.MsgRestartFilters), nil
		}
		return m.enterBrowse(sess), nil
	}

	if strings.TrimSpace(in.Text) != "" {
		if err := sess.Candidates.Search(in.Text); err != nil {
			return newReply(StateAwaitingTarget, constant.MsgNothingFound), nil
		}
		return m.enterBrowse(sess), nil
	}

	reply, err := m.targetPrompt(ctx, sess)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (m *Machine) handleBrowse(ctx context.Context, sess *Session, in Input) (*Reply, error) {
	switch {
	case in.IsAction(constant.ActionAddProduct):
		product, reply, err := m.resolveBrowseProduct(ctx, sess, in.Value)
		if err != nil {
			return nil, err
		}
		if reply != nil {
			return reply, nil
		}
		sess.Selection.Add(product)
		return m.browseReply(sess, constant.MsgProductAdded), nil

	case in.IsAction(constant.ActionRemoveProduct):
		productId, err := uuid.Parse(in.Value)
		if err != nil {
			return m.browseReply(sess, constant.MsgUnknownInput), nil
		}
		sess.Selection.Remove(productId)
		return m.browseReply(sess, constant.MsgProductRemoved), nil

	case in.IsAction(constant.ActionShowMore):
		sess.BrowseOffset += constant.BrowsePageSize
		return m.browseReply(sess, constant.MsgContinueSelecting), nil

	case in.IsAction(constant.ActionProductLink):
		product, reply, err := m.resolveBrowseProduct(ctx, sess, in.Value)
		if err != nil {
			return nil, err
		}
		if reply != nil {
			return reply, nil
		}
		r := m.browseReply(sess, constant.MsgContinueSelecting)
		if product.DescriptionLink == "" {
			r.MessageKey = constant.MsgNoProductLink
			r.Text = constant.MessageText(constant.MsgNoProductLink)
		} else {
			r.Text = product.DescriptionLink
		}
		return r, nil

	case in.IsAction(constant.ActionOpenFilters):
		sess.BrowsingSelection = false
		sess.BrowseOffset = 0
		sess.State = StateAwaitingFilterChoice
		return m.filterPrompt(), nil

	case in.IsAction(constant.ActionOpenCheckout):
		if sess.Selection.Len() == 0 {
			return m.browseReply(sess, constant.MsgNoUserProducts), nil
		}
		sess.BrowsingSelection = false
		sess.State = StateAwaitingCheckoutAction
		return m.checkoutReply(sess), nil
	}

	return m.browseReply(sess, constant.MsgContinueSelecting), nil
}

func (m *Machine) handleCheckout(_ context.Context, sess *Session, in Input) (*Reply, error) {
	switch {
	case in.IsAction(constant.ActionEditProducts):
		sess.BrowsingSelection = true
		sess.BrowseOffset = 0
		sess.State = StateAwaitingBrowseAction
		return m.browseReply(sess, constant.MsgContinueSelecting), nil

	case in.IsAction(constant.ActionOpenFilters):
		sess.State = StateAwaitingFilterChoice
		return m.filterPrompt(), nil

	case in.IsAction(constant.ActionConfirmOrder):
		if sess.Selection.Len() == 0 {
			return newReply(StateAwaitingCheckoutAction, constant.MsgNoUserProducts), nil
		}
		sess.State = StateAwaitingVolume
		return m.volumePrompt(), nil
	}

	return m.checkoutReply(sess), nil
}

func (m *Machine) handleVolume(_ context.Context, sess *Session, in Input) (*Reply, error) {
	volume, err := sanitizeVolume(in.Text)
	if err != nil {
		return newReply(StateAwaitingVolume, constant.MsgIncorrectVolume), nil
	}
	sess.Volume = &volume
	sess.State = StateAwaitingOS
	return m.osPrompt(), nil
}

func (m *Machine) handleOS(_ context.Context, sess *Session, in Input) (*Reply, error) {
	os := strings.ToLower(strings.TrimSpace(firstNonEmpty(in.Value, in.Text)))
	if !contains(constant.UserOSClasses, os) {
		return m.osPrompt(), nil
	}
	sess.OS = os
	sess.State = StateAwaitingStartDate
	return m.startDatePrompt(), nil
}

func (m *Machine) handleStartDate(_ context.Context, sess *Session, in Input) (*Reply, error) {
	date := strings.TrimSpace(in.Text)
	if !validCycleDate(date) {
		return newReply(StateAwaitingStartDate, constant.MsgIncorrectStartDate), nil
	}
	sess.StartDate = date

	// Only iOS needs the calendar file mailed; everyone else gets it
	// directly from the transport.
	if sess.OS == constant.IosOS {
		sess.State = StateAwaitingEmail
		return m.emailPrompt(), nil
	}
	sess.State = StateDone
	return newReply(StateDone, constant.MsgTableAlmostReady), nil
}

func (m *Machine) handleEmail(_ context.Context, sess *Session, in Input) (*Reply, error) {
	address := strings.TrimSpace(in.Text)
	if _, err := mail.ParseAddress(address); err != nil {
		return m.emailPrompt(), nil
	}
	sess.Email = address
	sess.State = StateDone
	return newReply(StateDone, constant.MsgTableAlmostReady), nil
}

// handleDone restarts the funnel on any contact after completion or cancel.
func (m *Machine) handleDone(_ context.Context, sess *Session, _ Input) (*Reply, error) {
	sess.Restart()
	return m.languagePrompt(), nil
}

// --- helpers ---

func (m *Machine) ensureSeeded(ctx context.Context, sess *Session) error {
	if sess.Candidates.Seeded() {
		return nil
	}
	all, err := m.catalog.ListAll(ctx)
	if err != nil {
		return apperr.Collaborator("seeding candidate set", err)
	}
	sess.Candidates.Seed(all)
	return nil
}

func (m *Machine) enterBrowse(sess *Session) *Reply {
	sess.BrowsingSelection = false
	sess.BrowseOffset = 0
	sess.State = StateAwaitingBrowseAction
	return m.browseReply(sess, constant.MsgContinueSelecting)
}

// resolveBrowseProduct looks the id up in the current browse source, then in
// the catalog itself: a card can outlive the narrowed set when an older
// message scrolls back into view, and the catalog is the authority on
// whether its product still exists. Only a catalog miss means the product
// vanished; that sub-action is aborted with a restart instruction while the
// rest of the session stays intact.
func (m *Machine) resolveBrowseProduct(ctx context.Context, sess *Session, rawId string) (*entity.Product, *Reply, error) {
	productId, err := uuid.Parse(rawId)
	if err != nil {
		return nil, m.browseReply(sess, constant.MsgUnknownInput), nil
	}

	source := sess.Candidates.Items()
	if sess.BrowsingSelection {
		source = sess.Selection.Items()
	}
	for _, p := range source {
		if p.Id == productId {
			return p, nil, nil
		}
	}

	product, err := m.catalog.GetProduct(ctx, productId)
	if err != nil {
		return nil, nil, apperr.Collaborator("product lookup", err)
	}
	if product == nil {
		return nil, m.browseReply(sess, constant.MsgRestartFilters), nil
	}
	return product, nil, nil
}

// sanitizeVolume strips every non-digit character and parses the remainder,
// so "200 l" and "200 литров" both read as 200. Pure punctuation is an
// invalid-volume error, never a crash.
func sanitizeVolume(text string) (int, error) {
	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, apperr.Validation("volume input carries no digits")
	}
	volume, err := strconv.Atoi(digits.String())
	if err != nil || volume <= 0 {
		return 0, apperr.Validation("volume out of range")
	}
	return volume, nil
}

func validCycleDate(date string) bool {
	_, err := time.Parse(constant.CycleStartDateLayout, date)
	return err == nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
