// FILE: internal/service/calculator_service.go
package service

import (
	"context"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/pkg/apperr"
	"agrocalc-be/internal/pkg/logger"
	"agrocalc-be/internal/repository/contract"
	"agrocalc-be/internal/repository/memory"
	"agrocalc-be/internal/repository/specification"
	"agrocalc-be/pkg/funnel"

	"github.com/google/uuid"
)

type ICalculatorService interface {
	HandleMessage(ctx context.Context, req *dto.CalculatorMessageRequest) (*dto.CalculatorReplyResponse, error)
}

type calculatorService struct {
	machine         *funnel.Machine
	sessionRepo     *memory.SessionRepository
	userRepo        contract.UserRepository
	scheduleService IScheduleService
	logger          logger.ILogger
}

func NewCalculatorService(
	machine *funnel.Machine,
	sessionRepo *memory.SessionRepository,
	userRepo contract.UserRepository,
	scheduleService IScheduleService,
	log logger.ILogger,
) ICalculatorService {
	return &calculatorService{
		machine:         machine,
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		scheduleService: scheduleService,
		logger:          log,
	}
}

// HandleMessage is one funnel turn: load (or revive) the session, run the
// machine, persist the durable fields and hand the prompt back.
func (s *calculatorService) HandleMessage(ctx context.Context, req *dto.CalculatorMessageRequest) (*dto.CalculatorReplyResponse, error) {
	sess, found := s.sessionRepo.Get(req.Username)
	if !found {
		user, err := s.userRepo.FindOrCreateByUsername(ctx, req.Username)
		if err != nil {
			return nil, apperr.Collaborator("loading user", err)
		}
		sess = s.reviveSession(user)
	}

	in := funnel.Input{Text: req.Text, Action: req.Action, Value: req.Value}
	reply, err := s.machine.Handle(ctx, sess, in)
	if err != nil {
		s.logger.Error("calculator", "funnel turn failed", map[string]interface{}{
			"username": req.Username,
			"state":    string(sess.State),
			"error":    err.Error(),
		})
		return nil, err
	}

	s.sessionRepo.Save(sess)
	if err := s.persistDurableFields(ctx, sess); err != nil {
		// The turn already succeeded; a persistence hiccup only costs
		// restart-survival, not the reply.
		s.logger.Warn("calculator", "persisting session fields failed", map[string]interface{}{
			"username": req.Username,
			"error":    err.Error(),
		})
	}

	// Completing the funnel on iOS queues the calendar email right away; the
	// other OS classes fetch the file over the download endpoint.
	if reply.MessageKey == constant.MsgTableAlmostReady && sess.OS == constant.IosOS {
		if err := s.scheduleService.RequestDelivery(ctx, sess.Username); err != nil {
			s.logger.Error("calculator", "queueing schedule delivery failed", map[string]interface{}{
				"username": req.Username,
				"error":    err.Error(),
			})
		}
	}

	return dto.NewCalculatorReplyResponse(reply), nil
}

// reviveSession rebuilds an evicted session from the user's durable fields.
// Funnel position and the candidate set are gone on purpose; the selection
// membership and collected parameters come back.
func (s *calculatorService) reviveSession(user *entity.User) *funnel.Session {
	sess := funnel.NewSession(user.Username)
	sess.Language = user.Language
	sess.Volume = user.StorageVolume
	sess.OS = user.OS
	sess.Email = user.Email
	sess.StartDate = user.CycleStartDate
	return sess
}

func (s *calculatorService) persistDurableFields(ctx context.Context, sess *funnel.Session) error {
	user, err := s.userRepo.FindOne(ctx, specification.ByUsername{Username: sess.Username})
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user " + sess.Username + " vanished mid-funnel")
	}

	user.Language = sess.Language
	user.StorageVolume = sess.Volume
	user.OS = sess.OS
	user.Email = sess.Email
	user.CycleStartDate = sess.StartDate
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.userRepo.ReplaceSelection(ctx, user.Id, sess.Selection.Ids())
}

// catalogSource adapts the repositories to the machine's read interface.
type catalogSource struct {
	productRepo contract.ProductRepository
	targetRepo  contract.TargetRepository
}

func NewCatalogSource(productRepo contract.ProductRepository, targetRepo contract.TargetRepository) funnel.CatalogSource {
	return &catalogSource{
		productRepo: productRepo,
		targetRepo:  targetRepo,
	}
}

func (c *catalogSource) ListAll(ctx context.Context) ([]*entity.Product, error) {
	// Stable catalog order keeps browse pagination deterministic across
	// sessions.
	return c.productRepo.FindAll(ctx, specification.OrderBy{Field: "created_at"})
}

func (c *catalogSource) ListTargets(ctx context.Context) ([]*entity.Target, error) {
	return c.targetRepo.FindAll(ctx, specification.OrderBy{Field: "tag"})
}

func (c *catalogSource) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return c.productRepo.FindOne(ctx, specification.ByID{ID: id})
}

func (c *catalogSource) GetTarget(ctx context.Context, id uuid.UUID) (*entity.Target, error) {
	return c.targetRepo.FindOne(ctx, specification.ByID{ID: id})
}
