package controller

import (
	"agrocalc-be/internal/dto"
	"agrocalc-be/internal/pkg/serverutils"
	"agrocalc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICalculatorController interface {
	RegisterRoutes(r fiber.Router)
	HandleMessage(ctx *fiber.Ctx) error
	GetSchedule(ctx *fiber.Ctx) error
	DownloadCalendar(ctx *fiber.Ctx) error
	DownloadSpreadsheet(ctx *fiber.Ctx) error
	RequestDelivery(ctx *fiber.Ctx) error
}

type calculatorController struct {
	calculatorService service.ICalculatorService
	scheduleService   service.IScheduleService
}

func NewCalculatorController(
	calculatorService service.ICalculatorService,
	scheduleService service.IScheduleService,
) ICalculatorController {
	return &calculatorController{
		calculatorService: calculatorService,
		scheduleService:   scheduleService,
	}
}

func (c *calculatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/calculator/v1")
	h.Post("message", c.HandleMessage)
	h.Get("schedule/:username", c.GetSchedule)
	h.Get("schedule/:username/calendar", c.DownloadCalendar)
	h.Get("schedule/:username/spreadsheet", c.DownloadSpreadsheet)
	h.Post("schedule/:username/delivery", c.RequestDelivery)
}

func (c *calculatorController) HandleMessage(ctx *fiber.Ctx) error {
	var req dto.CalculatorMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.calculatorService.HandleMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Next prompt", res))
}

func (c *calculatorController) GetSchedule(ctx *fiber.Ctx) error {
	res, err := c.scheduleService.GetSchedule(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feeding schedule", res))
}

func (c *calculatorController) DownloadCalendar(ctx *fiber.Ctx) error {
	filename, content, err := c.scheduleService.ExportCalendar(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/calendar")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(content)
}

func (c *calculatorController) DownloadSpreadsheet(ctx *fiber.Ctx) error {
	filename, content, err := c.scheduleService.ExportSpreadsheet(ctx.Context(), ctx.Params("username"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(content)
}

func (c *calculatorController) RequestDelivery(ctx *fiber.Ctx) error {
	if err := c.scheduleService.RequestDelivery(ctx.Context(), ctx.Params("username")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Delivery queued", nil))
}
