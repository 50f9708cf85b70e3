package funnel

import (
	"context"
	"fmt"
	"testing"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products  []*entity.Product
	targets   []*entity.Target
	listCalls int
}

func (f *fakeCatalog) ListAll(_ context.Context) ([]*entity.Product, error) {
	f.listCalls++
	return f.products, nil
}

func (f *fakeCatalog) ListTargets(_ context.Context) ([]*entity.Target, error) {
	return f.targets, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) GetTarget(_ context.Context, id uuid.UUID) (*entity.Target, error) {
	for _, t := range f.targets {
		if t.Id == id {
			return t, nil
		}
	}
	return nil, nil
}

func newFakeCatalog(productCount int) *fakeCatalog {
	target := &entity.Target{Id: uuid.New(), Tag: "calmag"}
	catalog := &fakeCatalog{targets: []*entity.Target{target}}
	for i := 0; i < productCount; i++ {
		p := &entity.Product{
			Id:          uuid.New(),
			BrandName:   "GrowPro",
			Name:        fmt.Sprintf("Product %02d", i),
			Environment: constant.EnvironmentHydro,
		}
		if i%2 == 0 {
			p.BaseCategory = constant.VegaBaseCategory
		} else {
			p.TargetId = &target.Id
			p.TargetTag = target.Tag
		}
		catalog.products = append(catalog.products, p)
	}
	return catalog
}

func step(t *testing.T, m *Machine, sess *Session, in Input) *Reply {
	t.Helper()
	reply, err := m.Handle(context.Background(), sess, in)
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

// drive the funnel from language selection into the browse loop
func advanceToBrowse(t *testing.T, m *Machine, sess *Session) {
	t.Helper()
	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Value: constant.EnvironmentHydro})
	reply := step(t, m, sess, Input{Action: constant.ActionSkip})
	require.Equal(t, StateAwaitingBrowseAction, reply.State)
}

func TestFunnelHappyPathAndroid(t *testing.T) {
	catalog := newFakeCatalog(3)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	advanceToBrowse(t, m, sess)

	first := catalog.products[0]
	reply := step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: first.Id.String()})
	assert.Equal(t, constant.MsgProductAdded, reply.MessageKey)
	require.Equal(t, 1, sess.Selection.Len())

	reply = step(t, m, sess, Input{Action: constant.ActionOpenCheckout})
	require.Equal(t, StateAwaitingCheckoutAction, reply.State)
	require.NotNil(t, reply.Summary)

	reply = step(t, m, sess, Input{Action: constant.ActionConfirmOrder})
	require.Equal(t, StateAwaitingVolume, reply.State)

	reply = step(t, m, sess, Input{Text: "200 liters"})
	require.Equal(t, StateAwaitingOS, reply.State)
	require.NotNil(t, sess.Volume)
	assert.Equal(t, 200, *sess.Volume)

	reply = step(t, m, sess, Input{Value: constant.AndroidOS})
	require.Equal(t, StateAwaitingStartDate, reply.State)

	reply = step(t, m, sess, Input{Text: "2024-01-01"})
	// Android gets the file directly, no email round-trip.
	assert.Equal(t, StateDone, reply.State)
	assert.Equal(t, "2024-01-01", sess.StartDate)
}

func TestFunnelIosRequiresEmail(t *testing.T) {
	catalog := newFakeCatalog(2)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	advanceToBrowse(t, m, sess)
	step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: catalog.products[0].Id.String()})
	step(t, m, sess, Input{Action: constant.ActionOpenCheckout})
	step(t, m, sess, Input{Action: constant.ActionConfirmOrder})
	step(t, m, sess, Input{Text: "100"})
	step(t, m, sess, Input{Value: constant.IosOS})

	reply := step(t, m, sess, Input{Text: "2024-05-10"})
	require.Equal(t, StateAwaitingEmail, reply.State)

	// Garbage address retries the same prompt.
	reply = step(t, m, sess, Input{Text: "not-an-email"})
	require.Equal(t, StateAwaitingEmail, reply.State)
	assert.Empty(t, sess.Email)

	reply = step(t, m, sess, Input{Text: "grower@example.com"})
	assert.Equal(t, StateDone, reply.State)
	assert.Equal(t, "grower@example.com", sess.Email)
}

func TestInvalidVolumeRetriesWithoutMutation(t *testing.T) {
	catalog := newFakeCatalog(2)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	advanceToBrowse(t, m, sess)
	step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: catalog.products[0].Id.String()})
	step(t, m, sess, Input{Action: constant.ActionOpenCheckout})
	step(t, m, sess, Input{Action: constant.ActionConfirmOrder})

	reply := step(t, m, sess, Input{Text: "..!?"})
	assert.Equal(t, StateAwaitingVolume, reply.State)
	assert.Equal(t, constant.MsgIncorrectVolume, reply.MessageKey)
	assert.Nil(t, sess.Volume)
}

func TestCancelClearsSessionFromAnyState(t *testing.T) {
	catalog := newFakeCatalog(3)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	advanceToBrowse(t, m, sess)
	step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: catalog.products[0].Id.String()})
	step(t, m, sess, Input{Action: constant.ActionOpenCheckout})
	step(t, m, sess, Input{Action: constant.ActionConfirmOrder})
	step(t, m, sess, Input{Text: "100"})

	reply := step(t, m, sess, Input{Action: constant.ActionCancel})
	assert.Equal(t, StateDone, reply.State)
	assert.Equal(t, constant.MsgStop, reply.MessageKey)
	assert.Zero(t, sess.Candidates.Len())
	assert.Zero(t, sess.Selection.Len())
	assert.Nil(t, sess.Volume)
	assert.Empty(t, sess.StartDate)

	// The next contact restarts the funnel from the first question.
	reply = step(t, m, sess, Input{Text: "hello"})
	assert.Equal(t, StateAwaitingLanguage, reply.State)
}

func TestEmptyTargetNarrowReturnsToFilterChoice(t *testing.T) {
	catalog := newFakeCatalog(4)
	orphan := &entity.Target{Id: uuid.New(), Tag: "orphan"}
	catalog.targets = append(catalog.targets, orphan)

	m := NewMachine(catalog)
	sess := NewSession("grower")

	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Value: constant.EnvironmentHydro})
	reply := step(t, m, sess, Input{Action: constant.ActionListTargets})
	require.Equal(t, StateAwaitingTarget, reply.State)

	// No candidate carries the orphan tag; the machine routes back one
	// funnel stage instead of advancing with an empty set.
	reply = step(t, m, sess, Input{Action: constant.ActionSelectTarget, Value: orphan.Id.String()})
	assert.Equal(t, StateAwaitingFilterChoice, reply.State)
	assert.Equal(t, StateAwaitingFilterChoice, sess.State)
}

func TestVanishedTargetRestartsSubFlow(t *testing.T) {
	catalog := newFakeCatalog(4)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Value: constant.EnvironmentHydro})
	step(t, m, sess, Input{Action: constant.ActionListTargets})

	reply := step(t, m, sess, Input{Action: constant.ActionSelectTarget, Value: uuid.NewString()})
	assert.Equal(t, StateAwaitingFilterChoice, reply.State)
	assert.Equal(t, constant.MsgRestartFilters, reply.MessageKey)
	// The candidate set is untouched by the aborted sub-action.
	assert.Equal(t, 4, sess.Candidates.Len())
}

func TestBrowsePagination(t *testing.T) {
	catalog := newFakeCatalog(7)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	advanceToBrowse(t, m, sess)

	reply := step(t, m, sess, Input{Text: "anything"})
	// Free text in browse just re-renders the page.
	require.Len(t, reply.Cards, constant.BrowsePageSize)
	last := reply.Cards[len(reply.Cards)-1]
	assert.Equal(t, 2, last.Remaining)
	assert.True(t, last.ShowBack)

	reply = step(t, m, sess, Input{Action: constant.ActionShowMore})
	require.Len(t, reply.Cards, 2)
	assert.Zero(t, reply.Cards[len(reply.Cards)-1].Remaining)
}

func TestSeedHappensOncePerSession(t *testing.T) {
	catalog := newFakeCatalog(4)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Value: constant.EnvironmentHydro})
	step(t, m, sess, Input{Action: constant.ActionListTargets})
	step(t, m, sess, Input{Action: constant.ActionSkip})
	step(t, m, sess, Input{Action: constant.ActionOpenFilters})
	step(t, m, sess, Input{Action: constant.ActionSkip})

	assert.Equal(t, 1, catalog.listCalls)
}

func TestSearchNotFoundKeepsCandidates(t *testing.T) {
	catalog := newFakeCatalog(4)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Action: constant.ActionSkip})

	reply := step(t, m, sess, Input{Text: "no-such-brand"})
	assert.Equal(t, constant.MsgNothingFound, reply.MessageKey)
	assert.Equal(t, StateAwaitingFilterChoice, sess.State)
	assert.Equal(t, 4, sess.Candidates.Len())
}

func TestStaleCardResolvesThroughCatalog(t *testing.T) {
	catalog := newFakeCatalog(4)
	m := NewMachine(catalog)
	sess := NewSession("grower")

	step(t, m, sess, Input{Text: "EN"})
	step(t, m, sess, Input{Value: constant.EnvironmentHydro})
	// Narrow to base products; the target-tagged ones leave the candidate
	// set but their cards may still be on screen.
	step(t, m, sess, Input{Action: constant.ActionSelectBase, Value: constant.VegaBaseCategory})

	stale := catalog.products[1]
	require.False(t, sess.Candidates.Contains(stale.Id))

	reply := step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: stale.Id.String()})
	assert.Equal(t, constant.MsgProductAdded, reply.MessageKey)
	assert.True(t, sess.Selection.Contains(stale.Id))

	// A product the catalog itself no longer knows aborts the sub-action.
	reply = step(t, m, sess, Input{Action: constant.ActionAddProduct, Value: uuid.NewString()})
	assert.Equal(t, constant.MsgRestartFilters, reply.MessageKey)
	assert.Equal(t, 1, sess.Selection.Len())
}
