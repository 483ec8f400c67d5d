package repository

import (
	"context"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// PendingSaleRepository estaciona carritos en curso por slot de sesión.
// Park pisa sin condiciones lo que hubiera en el slot (last write wins);
// Recall sobre un slot vacío devuelve nil sin error. Sin efectos de stock.
// Lleva context porque el backend típico es Redis.
type PendingSaleRepository interface {
	Park(ctx context.Context, pending *entity.PendingSale) error
	Recall(ctx context.Context, slotID string) (*entity.PendingSale, error)
	Release(ctx context.Context, slotID string) error
}
