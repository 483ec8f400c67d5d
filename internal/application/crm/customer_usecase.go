// Package crm mantiene el directorio de clientes y sus estadísticas de
// compra. Es el colaborador best-effort del motor de ventas: se invoca
// después del commit y sus fallas nunca tocan la venta.
package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

// CustomerUseCase casos de uso del directorio de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// FindOrCreateByName busca el cliente por nombre (recortado) y lo crea si no
// existe.
func (uc *CustomerUseCase) FindOrCreateByName(name string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       name,
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(customer); err != nil {
		// Carrera benigna: otro commit pudo crearlo entre el Get y el Create.
		if err == domain.ErrDuplicate {
			return uc.repo.GetByName(name)
		}
		return nil, err
	}
	return customer, nil
}

// RecordPurchase implementa sales.StatsRecorder: suma una compra a las
// estadísticas del cliente, creándolo si hace falta.
func (uc *CustomerUseCase) RecordPurchase(_ context.Context, customerName string, total decimal.Decimal, at time.Time) error {
	customer, err := uc.FindOrCreateByName(customerName)
	if err != nil {
		return fmt.Errorf("buscar o crear cliente: %w", err)
	}
	customer.PurchaseCount++
	customer.TotalSpent = customer.TotalSpent.Add(total)
	customer.LastPurchaseAt = &at
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return fmt.Errorf("actualizar estadísticas: %w", err)
	}
	return nil
}

// GetByID devuelve el cliente o ErrNotFound.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]*entity.Customer, error) {
	return uc.repo.List(limit, offset)
}
