package bootstrap

import (
	"agrocalc-be/internal/config"
	"agrocalc-be/internal/controller"
	"agrocalc-be/internal/pkg/logger"
	"agrocalc-be/internal/pkg/mailer"
	"agrocalc-be/internal/repository/implementation"
	"agrocalc-be/internal/repository/memory"
	"agrocalc-be/internal/service"
	"agrocalc-be/pkg/funnel"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CalculatorController controller.ICalculatorController

	// Background Services (Exposed for main.go to run)
	DeliveryConsumerService service.IDeliveryConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	deliveryLogger := logger.NewIsolatedLogger(cfg.App.DeliveryLogPath)

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	productRepo := implementation.NewProductRepository(db)
	targetRepo := implementation.NewTargetRepository(db)
	userRepo := implementation.NewUserRepository(db)
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Delivery.TopicName, pubSub)
	scheduleService := service.NewScheduleService(
		userRepo,
		productRepo,
		publisherService,
		emailService,
		cfg.Delivery,
		sysLogger,
	)

	machine := funnel.NewMachine(service.NewCatalogSource(productRepo, targetRepo))
	calculatorService := service.NewCalculatorService(machine, sessionRepo, userRepo, scheduleService, sysLogger)
	deliveryConsumerService := service.NewDeliveryConsumerService(
		pubSub,
		cfg.Delivery.TopicName,
		scheduleService,
		deliveryLogger,
	)

	// 5. Controllers
	return &Container{
		CalculatorController: controller.NewCalculatorController(calculatorService, scheduleService),

		DeliveryConsumerService: deliveryConsumerService,
	}
}
