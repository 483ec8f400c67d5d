package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/dto"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/pricing"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var validPaymentMethods = map[string]bool{
	entity.PaymentCash:     true,
	entity.PaymentDebit:    true,
	entity.PaymentCredit:   true,
	entity.PaymentTransfer: true,
	entity.PaymentQR:       true,
}

// SaleHandler maneja la confirmación y consulta de ventas (protegido).
type SaleHandler struct {
	commitUC *sales.CommitSaleUseCase
	saleRepo repository.SaleRepository
}

// NewSaleHandler construye el handler.
func NewSaleHandler(commitUC *sales.CommitSaleUseCase, saleRepo repository.SaleRepository) *SaleHandler {
	return &SaleHandler{commitUC: commitUC, saleRepo: saleRepo}
}

// Commit godoc
// @Summary      Confirmar la venta del carrito
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitSaleRequest  true  "Carrito, descuento y pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el carrito está vacío"})
	}
	if !validPaymentMethods[in.PaymentMethod] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "payment_method inválido"})
	}
	sale, err := h.commitUC.Commit(c.Context(), sales.CommitSaleInput{
		Items:         in.ToCartLines(),
		Discount:      in.ToDiscountEntity(),
		PaymentMethod: in.PaymentMethod,
		Commission:    in.Commission,
		CustomerName:  in.CustomerName,
	})
	if err != nil {
		return saleErrorResponse(c, err)
	}
	change := pricing.Change(in.CashReceived, sale.Total)
	netTotal := pricing.NetAfterCommission(sale.Total, sale.Commission)
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale, change, netTotal))
}

// GetByID godoc
// @Summary      Obtener venta por ID o número
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de venta o número YYYYMMDD-NNN"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.saleRepo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sale == nil {
		// También se acepta el número legible de ticket.
		sale, err = h.saleRepo.GetBySaleNumber(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	if sale == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(saleView(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        day     query  string  false  "Día YYYY-MM-DD (vacío: historial paginado)"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var salesFound []*entity.Sale
	var err error
	if dayStr := c.Query("day"); dayStr != "" {
		day, perr := time.ParseInLocation("2006-01-02", dayStr, time.Local)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "day debe ser YYYY-MM-DD"})
		}
		salesFound, err = h.saleRepo.ListByDay(day)
	} else {
		limit, offset := pageParams(c)
		salesFound, err = h.saleRepo.List(limit, offset)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SaleResponse, 0, len(salesFound))
	for _, s := range salesFound {
		out = append(out, saleView(s))
	}
	return c.JSON(out)
}

// saleView arma la respuesta de una venta consultada: sin efectivo recibido
// no hay vuelto que calcular.
func saleView(s *entity.Sale) dto.SaleResponse {
	return dto.ToSaleResponse(s, decimalZero, pricing.NetAfterCommission(s.Total, s.Commission))
}

func saleErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrVariantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "VARIANT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDiscountOutOfRange), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
