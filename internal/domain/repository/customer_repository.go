package repository

import "github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"

// CustomerRepository define el puerto del directorio de clientes. Las
// estadísticas de compra se actualizan vía Update desde el efecto
// best-effort post-venta.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByName(name string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
