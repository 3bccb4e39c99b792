// FILE: internal/controller/admin_controller.go
package controller

import (
	"anantara-be/internal/dto"
	"anantara-be/internal/pkg/serverutils"
	"anantara-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService   service.IAdminService
	paymentService service.IPaymentService
}

func NewAdminController(adminService service.IAdminService, paymentService service.IPaymentService) IAdminController {
	return &adminController{
		adminService:   adminService,
		paymentService: paymentService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.JwtMiddleware, serverutils.AdminMiddleware)

	h.Get("/settings", c.GetSettings)
	h.Get("/settings/:type", c.GetSetting)
	h.Put("/settings/:type", c.UpdateSetting)

	h.Get("/documents", c.ListDocuments)
	h.Post("/documents", c.CreateDocument)
	h.Put("/documents/:id", c.UpdateDocument)
	h.Delete("/documents/:id", c.DeleteDocument)

	h.Get("/users", c.ListUsers)
	h.Put("/users/:id", c.UpdateUser)
	h.Put("/users/:id/plan", c.UpdateUserPlan)

	h.Post("/payments/:id/refund", c.RefundPayment)

	h.Get("/export", c.ExportData)
	h.Post("/import", c.ImportData)

	h.Get("/logs", c.GetLogs)
}

func (c *adminController) GetSettings(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetSettings(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) GetSetting(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetSetting(ctx.Context(), ctx.Params("type"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) UpdateSetting(ctx *fiber.Ctx) error {
	var req dto.UpdateSettingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateSetting(ctx.Context(), ctx.Params("type"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Setting updated", res))
}

func (c *adminController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) CreateDocument(ctx *fiber.Ctx) error {
	var req dto.DocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.adminService.CreateDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Document created", res))
}

func (c *adminController) UpdateDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	var req dto.DocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateDocument(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document updated", res))
}

func (c *adminController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.adminService.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Document deleted", nil))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListUsers(ctx.Context(),
		ctx.Query("q"),
		ctx.QueryInt("limit", 50),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.AdminUpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateUser(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated", res))
}

func (c *adminController) UpdateUserPlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.adminService.UpdateUserPlan(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User plan updated", res))
}

func (c *adminController) RefundPayment(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid transaction id")
	}

	if err := c.paymentService.Refund(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Refund processed", nil))
}

func (c *adminController) ExportData(ctx *fiber.Ctx) error {
	res, err := c.adminService.ExportData(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) ImportData(ctx *fiber.Ctx) error {
	var bundle dto.ExportBundle
	if err := ctx.BodyParser(&bundle); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := c.adminService.ImportData(ctx.Context(), &bundle)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Import finished", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetLogs(
		ctx.Query("level"),
		ctx.QueryInt("limit", 100),
		ctx.QueryInt("offset", 0),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}
