package service

import (
	"context"

	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/repository/specification"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	user            *entity.User
	findOrCreateHit int
	updated         *entity.User
	replacedWith    []uuid.UUID
}

func (f *fakeUserRepo) FindOrCreateByUsername(_ context.Context, username string) (*entity.User, error) {
	f.findOrCreateHit++
	if f.user == nil {
		f.user = &entity.User{Id: uuid.New(), Username: username}
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.updated = user
	return nil
}

func (f *fakeUserRepo) ReplaceSelection(_ context.Context, _ uuid.UUID, productIds []uuid.UUID) error {
	f.replacedWith = productIds
	return nil
}

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Product, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			for _, p := range f.products {
				if p.Id == byId.ID {
					return p, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	for _, spec := range specs {
		if byIds, ok := spec.(specification.ByIDs); ok {
			wanted := make(map[uuid.UUID]bool, len(byIds.IDs))
			for _, id := range byIds.IDs {
				wanted[id] = true
			}
			var matched []*entity.Product
			for _, p := range f.products {
				if wanted[p.Id] {
					matched = append(matched, p)
				}
			}
			return matched, nil
		}
	}
	return f.products, nil
}

func (f *fakeProductRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product, _ uuid.UUID) error {
	f.products = append(f.products, product)
	return nil
}

type fakeTargetRepo struct {
	targets []*entity.Target
}

func (f *fakeTargetRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Target, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			for _, t := range f.targets {
				if t.Id == byId.ID {
					return t, nil
				}
			}
		}
	}
	return nil, nil
}

func (f *fakeTargetRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Target, error) {
	return f.targets, nil
}

func (f *fakeTargetRepo) Create(_ context.Context, target *entity.Target) error {
	f.targets = append(f.targets, target)
	return nil
}

type fakePublisher struct {
	payloads [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakeMailer struct {
	to         string
	subject    string
	filename   string
	attachment []byte
}

func (f *fakeMailer) SendScheduleArtifact(toEmail, subject, filename string, attachment []byte) error {
	f.to = toEmail
	f.subject = subject
	f.filename = filename
	f.attachment = attachment
	return nil
}

type fakeScheduleService struct {
	deliveryRequests []string
}

func (f *fakeScheduleService) GetSchedule(_ context.Context, _ string) (*dto.ScheduleResponse, error) {
	return nil, nil
}

func (f *fakeScheduleService) ExportCalendar(_ context.Context, _ string) (string, []byte, error) {
	return "", nil, nil
}

func (f *fakeScheduleService) ExportSpreadsheet(_ context.Context, _ string) (string, []byte, error) {
	return "", nil, nil
}

func (f *fakeScheduleService) RequestDelivery(_ context.Context, username string) error {
	f.deliveryRequests = append(f.deliveryRequests, username)
	return nil
}

func (f *fakeScheduleService) DeliverCalendar(_ context.Context, _ uuid.UUID) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }
