package repository

import "github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"

// ReturnRepository define el puerto de persistencia de devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	ListBySale(saleID string) ([]*entity.Return, error)
	List(limit, offset int) ([]*entity.Return, error)
}
