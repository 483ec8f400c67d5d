package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/dto"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
)

// PendingSaleHandler estaciona y recupera carritos en curso (protegido).
type PendingSaleHandler struct {
	uc *sales.PendingSaleUseCase
}

// NewPendingSaleHandler construye el handler.
func NewPendingSaleHandler(uc *sales.PendingSaleUseCase) *PendingSaleHandler {
	return &PendingSaleHandler{uc: uc}
}

// Park godoc
// @Summary      Estacionar el carrito en curso en un slot
// @Tags         pending-sales
// @Security     Bearer
// @Accept       json
// @Param        slot  path  string  true  "ID de slot"
// @Param        body  body  dto.ParkSaleRequest  true  "Carrito a estacionar"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pending-sales/{slot} [put]
func (h *PendingSaleHandler) Park(c *fiber.Ctx) error {
	slot := c.Params("slot")
	var in dto.ParkSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req := dto.CommitSaleRequest{Items: in.Items, Discount: in.Discount}
	err := h.uc.Park(c.Context(), slot, req.ToCartLines(), req.ToDiscountEntity(), in.PaymentMethod, in.CustomerName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slot es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recall godoc
// @Summary      Recuperar el carrito estacionado en un slot
// @Tags         pending-sales
// @Security     Bearer
// @Produce      json
// @Param        slot  path  string  true  "ID de slot"
// @Success      200   {object}  dto.PendingSaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pending-sales/{slot} [get]
func (h *PendingSaleHandler) Recall(c *fiber.Ctx) error {
	slot := c.Params("slot")
	pending, err := h.uc.Recall(c.Context(), slot)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slot es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if pending == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "slot vacío"})
	}
	return c.JSON(dto.ToPendingSaleResponse(pending))
}

// Release godoc
// @Summary      Liberar un slot (descartar el carrito estacionado)
// @Tags         pending-sales
// @Security     Bearer
// @Param        slot  path  string  true  "ID de slot"
// @Success      204
// @Router       /api/pending-sales/{slot} [delete]
func (h *PendingSaleHandler) Release(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if err := h.uc.Release(c.Context(), slot); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "slot es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
