// FILE: internal/controller/payment_controller.go
package controller

import (
	"anantara-be/internal/dto"
	"anantara-be/internal/pkg/serverutils"
	"anantara-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	GetPlans(ctx *fiber.Ctx) error
	Subscribe(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	CheckStatus(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Get("/plans", c.GetPlans)
	h.Post("/subscribe", serverutils.JwtMiddleware, c.Subscribe)
	// Stripe calls this one; authentication is the webhook signature.
	h.Post("/webhook", c.Webhook)
	h.Get("/status/:id", serverutils.JwtMiddleware, c.CheckStatus)
	h.Get("/history", serverutils.JwtMiddleware, c.History)
	h.Post("/cancel", serverutils.JwtMiddleware, c.Cancel)
}

func (c *paymentController) GetPlans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", c.service.GetPlans()))
}

func (c *paymentController) Subscribe(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Subscribe(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Checkout session created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("Stripe-Signature")
	if err := c.service.HandleStripeWebhook(ctx.Context(), ctx.Body(), signature); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Webhook rejected"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

func (c *paymentController) CheckStatus(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	transactionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid transaction id")
	}

	res, err := c.service.CheckStatus(ctx.Context(), userId, transactionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *paymentController) History(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListPayments(ctx.Context(), userId, ctx.Query("status"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *paymentController) Cancel(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.CancelSubscription(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription canceled", nil))
}
