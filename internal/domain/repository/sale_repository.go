package repository

import (
	"time"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia de ventas. Las ventas son
// inmutables después de Create; no hay Update.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetBySaleNumber(number string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	ListByDay(day time.Time) ([]*entity.Sale, error)
}

// SaleCounterRepository es la secuencia transaccional por día calendario que
// respalda la numeración YYYYMMDD-NNN. Next incrementa y devuelve el último
// número del día de forma atómica (upsert con RETURNING), cerrando la
// carrera de dos cajas leyendo el mismo "último número".
type SaleCounterRepository interface {
	Next(day string) (int, error)
}
