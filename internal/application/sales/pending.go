package sales

import (
	"context"
	"time"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

// PendingSaleUseCase estaciona una venta en curso para atender a otro
// cliente y retomarla después. Estacionar y retomar no tienen ningún efecto
// de stock ni financiero; eso ocurre recién en el Commit del orquestador.
type PendingSaleUseCase struct {
	repo repository.PendingSaleRepository
}

// NewPendingSaleUseCase construye el caso de uso.
func NewPendingSaleUseCase(repo repository.PendingSaleRepository) *PendingSaleUseCase {
	return &PendingSaleUseCase{repo: repo}
}

// Park guarda el carrito en el slot indicado, pisando sin condiciones lo que
// hubiera (last write wins, sin merge ni error de conflicto).
func (uc *PendingSaleUseCase) Park(ctx context.Context, slotID string, items []entity.CartLine, discount entity.Discount, paymentMethod, customerName string) error {
	if slotID == "" || len(items) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.repo.Park(ctx, &entity.PendingSale{
		SlotID:        slotID,
		Items:         items,
		Discount:      discount,
		PaymentMethod: paymentMethod,
		CustomerName:  customerName,
		ParkedAt:      time.Now(),
	})
}

// Recall recupera el carrito estacionado en el slot; nil si el slot está
// vacío (no es un error).
func (uc *PendingSaleUseCase) Recall(ctx context.Context, slotID string) (*entity.PendingSale, error) {
	if slotID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Recall(ctx, slotID)
}

// Release libera el slot. Liberar un slot ya vacío es un no-op.
func (uc *PendingSaleUseCase) Release(ctx context.Context, slotID string) error {
	if slotID == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.Release(ctx, slotID)
}
