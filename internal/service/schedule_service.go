// FILE: internal/service/schedule_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"agrocalc-be/internal/config"
	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/pkg/apperr"
	"agrocalc-be/internal/pkg/logger"
	"agrocalc-be/internal/pkg/mailer"
	"agrocalc-be/internal/repository/contract"
	"agrocalc-be/internal/repository/specification"
	"agrocalc-be/pkg/export"
	"agrocalc-be/pkg/schedule"

	"github.com/google/uuid"
)

type IScheduleService interface {
	GetSchedule(ctx context.Context, username string) (*dto.ScheduleResponse, error)
	ExportCalendar(ctx context.Context, username string) (string, []byte, error)
	ExportSpreadsheet(ctx context.Context, username string) (string, []byte, error)
	// RequestDelivery queues the calendar for email shipping (iOS flow).
	RequestDelivery(ctx context.Context, username string) error
	// DeliverCalendar renders and mails the calendar; the delivery consumer's
	// entry point.
	DeliverCalendar(ctx context.Context, userId uuid.UUID) error
}

type scheduleService struct {
	userRepo         contract.UserRepository
	productRepo      contract.ProductRepository
	publisherService IPublisherService
	emailService     mailer.IEmailService
	delivery         config.DeliveryConfig
	logger           logger.ILogger
}

func NewScheduleService(
	userRepo contract.UserRepository,
	productRepo contract.ProductRepository,
	publisherService IPublisherService,
	emailService mailer.IEmailService,
	delivery config.DeliveryConfig,
	log logger.ILogger,
) IScheduleService {
	return &scheduleService{
		userRepo:         userRepo,
		productRepo:      productRepo,
		publisherService: publisherService,
		emailService:     emailService,
		delivery:         delivery,
		logger:           log,
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context, username string) (*dto.ScheduleResponse, error) {
	user, products, err := s.loadInputs(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}

	events, err := schedule.Generate(products, *user.StorageVolume, user.CycleStartDate)
	if err != nil {
		return nil, err
	}

	res := &dto.ScheduleResponse{
		StartDate:       user.CycleStartDate,
		Volume:          *user.StorageVolume,
		InstructionsKey: constant.MsgCalendarInstructions,
	}
	if user.OS == constant.IosOS {
		res.InstructionsKey = constant.MsgIosCalendarInstructions
	}
	for _, event := range events {
		res.Events = append(res.Events, dto.ScheduleEventResponse{
			Date:         event.Date.Format(constant.CycleStartDateLayout),
			Descriptions: event.Descriptions,
		})
	}
	return res, nil
}

func (s *scheduleService) ExportCalendar(ctx context.Context, username string) (string, []byte, error) {
	user, products, err := s.loadInputs(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return "", nil, err
	}
	content, err := s.renderCalendar(user, products)
	if err != nil {
		return "", nil, err
	}
	return s.delivery.AttachmentICS, content, nil
}

func (s *scheduleService) ExportSpreadsheet(ctx context.Context, username string) (string, []byte, error) {
	user, products, err := s.loadInputs(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return "", nil, err
	}
	content, err := export.Spreadsheet(products, *user.StorageVolume)
	if err != nil {
		return "", nil, apperr.Collaborator("rendering spreadsheet", err)
	}
	return "schedule.csv", content, nil
}

func (s *scheduleService) RequestDelivery(ctx context.Context, username string) error {
	user, _, err := s.loadInputs(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return err
	}
	if user.Email == "" {
		return apperr.Validation("user " + username + " has no email for delivery")
	}

	payload, err := json.Marshal(dto.ScheduleDeliveryMessage{UserId: user.Id})
	if err != nil {
		return err
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return apperr.Collaborator("queueing schedule delivery", err)
	}

	s.logger.Info("schedule", "delivery queued", map[string]interface{}{
		"username": username,
	})
	return nil
}

func (s *scheduleService) DeliverCalendar(ctx context.Context, userId uuid.UUID) error {
	user, products, err := s.loadInputs(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user.Email == "" {
		return apperr.Validation("user " + user.Username + " has no email for delivery")
	}

	content, err := s.renderCalendar(user, products)
	if err != nil {
		return err
	}
	if err := s.emailService.SendScheduleArtifact(user.Email, s.delivery.EmailSubject, s.delivery.AttachmentICS, content); err != nil {
		return apperr.Collaborator("sending schedule email", err)
	}
	return nil
}

func (s *scheduleService) renderCalendar(user *entity.User, products []*entity.Product) ([]byte, error) {
	events, err := schedule.Generate(products, *user.StorageVolume, user.CycleStartDate)
	if err != nil {
		return nil, err
	}
	return export.Calendar(events, export.CalendarOptions{
		EventName: fmt.Sprintf(s.delivery.EventName, *user.StorageVolume),
		EventURL:  s.delivery.EventURL,
	}), nil
}

// loadInputs fetches the user plus the selected products, in selection order,
// and rejects an incomplete funnel outcome before any schedule math runs.
func (s *scheduleService) loadInputs(ctx context.Context, spec specification.Specification) (*entity.User, []*entity.Product, error) {
	user, err := s.userRepo.FindOne(ctx, spec)
	if err != nil {
		return nil, nil, apperr.Collaborator("loading user", err)
	}
	if user == nil {
		return nil, nil, apperr.NotFound("user not found")
	}
	if user.StorageVolume == nil {
		return nil, nil, apperr.Validation("reservoir volume is not set")
	}
	if user.CycleStartDate == "" {
		return nil, nil, apperr.InvalidStartDate("cycle start date is not set")
	}
	if len(user.SelectedProductIds) == 0 {
		return nil, nil, apperr.EmptyResult("no products selected")
	}

	products, err := s.productRepo.FindAll(ctx, specification.ByIDs{IDs: user.SelectedProductIds})
	if err != nil {
		return nil, nil, apperr.Collaborator("loading selected products", err)
	}

	// FindAll returns database order; restore the user's selection order.
	byId := make(map[uuid.UUID]*entity.Product, len(products))
	for _, p := range products {
		byId[p.Id] = p
	}
	ordered := make([]*entity.Product, 0, len(products))
	for _, id := range user.SelectedProductIds {
		if p, ok := byId[id]; ok {
			ordered = append(ordered, p)
		}
	}
	if len(ordered) == 0 {
		return nil, nil, apperr.EmptyResult("selected products no longer exist")
	}
	return user, ordered, nil
}
