package service

import (
	"context"
	"testing"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/repository/memory"
	"agrocalc-be/pkg/funnel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalculatorFixture() (ICalculatorService, *fakeUserRepo, *fakeProductRepo, *fakeScheduleService) {
	productRepo := &fakeProductRepo{products: []*entity.Product{
		{
			Id:           uuid.New(),
			BrandName:    "BioBizz",
			Name:         "Bio Grow",
			Environment:  constant.EnvironmentSoil,
			BaseCategory: constant.VegaBaseCategory,
		},
	}}
	targetRepo := &fakeTargetRepo{}
	userRepo := &fakeUserRepo{}
	scheduleSvc := &fakeScheduleService{}

	machine := funnel.NewMachine(NewCatalogSource(productRepo, targetRepo))
	svc := NewCalculatorService(machine, memory.NewSessionRepository(), userRepo, scheduleSvc, noopLogger{})
	return svc, userRepo, productRepo, scheduleSvc
}

func TestHandleMessageStartsFunnelForNewUser(t *testing.T) {
	svc, userRepo, _, _ := newCalculatorFixture()

	res, err := svc.HandleMessage(context.Background(), &dto.CalculatorMessageRequest{
		Username: "grower",
		Text:     "hi",
	})
	require.NoError(t, err)

	// First contact with an unknown language answers with the language prompt.
	assert.Equal(t, string(funnel.StateAwaitingLanguage), res.State)
	assert.Equal(t, constant.MsgSelectLanguage, res.MessageKey)
	assert.NotEmpty(t, res.Options)
	assert.Equal(t, 1, userRepo.findOrCreateHit)
}

func TestHandleMessageReusesCachedSession(t *testing.T) {
	svc, userRepo, _, _ := newCalculatorFixture()

	_, err := svc.HandleMessage(context.Background(), &dto.CalculatorMessageRequest{Username: "grower", Text: "hi"})
	require.NoError(t, err)
	res, err := svc.HandleMessage(context.Background(), &dto.CalculatorMessageRequest{Username: "grower", Text: "EN"})
	require.NoError(t, err)

	// The second turn advances off the cached session instead of rebuilding it.
	assert.Equal(t, string(funnel.StateAwaitingEnvironment), res.State)
	assert.Equal(t, 1, userRepo.findOrCreateHit)
}

func TestHandleMessagePersistsDurableFields(t *testing.T) {
	svc, userRepo, productRepo, _ := newCalculatorFixture()
	ctx := context.Background()

	turns := []dto.CalculatorMessageRequest{
		{Username: "grower", Text: "hi"},
		{Username: "grower", Text: "EN"},
		{Username: "grower", Action: constant.ActionSkip},
		{Username: "grower", Action: constant.ActionSkip},
		{Username: "grower", Action: constant.ActionAddProduct, Value: productRepo.products[0].Id.String()},
	}
	for i := range turns {
		_, err := svc.HandleMessage(ctx, &turns[i])
		require.NoError(t, err)
	}

	require.NotNil(t, userRepo.updated)
	assert.Equal(t, constant.EnglishLanguage, userRepo.updated.Language)
	require.Len(t, userRepo.replacedWith, 1)
	assert.Equal(t, productRepo.products[0].Id, userRepo.replacedWith[0])
}

func TestIosCompletionQueuesDelivery(t *testing.T) {
	svc, _, productRepo, scheduleSvc := newCalculatorFixture()
	ctx := context.Background()

	turns := []dto.CalculatorMessageRequest{
		{Username: "grower", Text: "hi"},
		{Username: "grower", Text: "EN"},
		{Username: "grower", Action: constant.ActionSkip},
		{Username: "grower", Action: constant.ActionSkip},
		{Username: "grower", Action: constant.ActionAddProduct, Value: productRepo.products[0].Id.String()},
		{Username: "grower", Action: constant.ActionOpenCheckout},
		{Username: "grower", Action: constant.ActionConfirmOrder},
		{Username: "grower", Text: "100"},
		{Username: "grower", Value: constant.IosOS},
		{Username: "grower", Text: "2024-01-01"},
	}
	for i := range turns {
		_, err := svc.HandleMessage(ctx, &turns[i])
		require.NoError(t, err)
	}
	assert.Empty(t, scheduleSvc.deliveryRequests)

	// Supplying the email finishes the funnel and queues the calendar email.
	res, err := svc.HandleMessage(ctx, &dto.CalculatorMessageRequest{Username: "grower", Text: "grower@example.com"})
	require.NoError(t, err)
	assert.Equal(t, string(funnel.StateDone), res.State)
	assert.Equal(t, []string{"grower"}, scheduleSvc.deliveryRequests)
}

func TestHandleMessageRevivesFromDurableFields(t *testing.T) {
	productRepo := &fakeProductRepo{}
	targetRepo := &fakeTargetRepo{}
	volume := 150
	userRepo := &fakeUserRepo{user: &entity.User{
		Id:            uuid.New(),
		Username:      "grower",
		Language:      constant.EnglishLanguage,
		StorageVolume: &volume,
		OS:            constant.MacOS,
	}}

	machine := funnel.NewMachine(NewCatalogSource(productRepo, targetRepo))
	svc := NewCalculatorService(machine, memory.NewSessionRepository(), userRepo, &fakeScheduleService{}, noopLogger{})

	// Session cache is empty, so the durable record rebuilds the session; the
	// funnel still restarts from the first question.
	res, err := svc.HandleMessage(context.Background(), &dto.CalculatorMessageRequest{Username: "grower", Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, string(funnel.StateAwaitingLanguage), res.State)

	require.NotNil(t, userRepo.updated)
	assert.Equal(t, constant.MacOS, userRepo.updated.OS)
	require.NotNil(t, userRepo.updated.StorageVolume)
	assert.Equal(t, 150, *userRepo.updated.StorageVolume)
}
