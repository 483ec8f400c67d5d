package repository

import "github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"

// UserRepository define el puerto de usuarios (operadores de caja).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
