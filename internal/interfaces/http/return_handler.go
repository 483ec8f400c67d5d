package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RoseMODA/rosema-pos-sub001/internal/application/dto"
	"github.com/RoseMODA/rosema-pos-sub001/internal/application/sales"
)

// ReturnHandler maneja devoluciones y cambios (protegido).
type ReturnHandler struct {
	uc *sales.ReturnUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *sales.ReturnUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// Process godoc
// @Summary      Procesar devolución sobre una venta pasada
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessReturnRequest  true  "Venta e ítems a devolver"
// @Success      201   {object}  dto.ProcessReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SaleID == "" || len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sale_id e items son requeridos"})
	}
	items := make([]sales.ReturnItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ReturnItemInput{
			ItemIndex:       it.ItemIndex,
			Quantity:        it.Quantity,
			DiscountPercent: it.DiscountPercent,
		})
	}
	result, err := h.uc.ProcessReturn(c.Context(), sales.ProcessReturnInput{SaleID: in.SaleID, Items: items})
	if err != nil {
		return saleErrorResponse(c, err)
	}
	out := dto.ProcessReturnResponse{Total: result.Total}
	for _, r := range result.Returns {
		out.Returns = append(out.Returns, dto.ToReturnResponse(r))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExchangeLine godoc
// @Summary      Armar la línea negativa de un cambio
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExchangeLineRequest  true  "Variante devuelta y descuento original"
// @Success      200   {object}  dto.CartLineDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns/exchange-line [post]
func (h *ReturnHandler) ExchangeLine(c *fiber.Ctx) error {
	var in dto.ExchangeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es requerido"})
	}
	line, err := h.uc.BuildExchangeLine(c.Context(), in.ProductID, in.Size, in.Color, in.DiscountPercent)
	if err != nil {
		return saleErrorResponse(c, err)
	}
	return c.JSON(dto.CartLineDTO{
		Kind:      line.Kind,
		ProductID: line.ProductID,
		Name:      line.Name,
		Size:      line.Size,
		Color:     line.Color,
		UnitPrice: line.UnitPrice,
		Quantity:  line.Quantity,
		IsReturn:  line.IsReturn,
	})
}
