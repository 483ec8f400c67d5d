// Package memory implementa el estacionamiento de ventas pendientes en un
// mapa protegido por mutex. Se usa en tests y en despliegues sin Redis
// (una sola instancia de caja).
package memory

import (
	"context"
	"sync"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var _ repository.PendingSaleRepository = (*PendingSaleStore)(nil)

// PendingSaleStore guarda carritos estacionados en memoria del proceso.
type PendingSaleStore struct {
	mu    sync.RWMutex
	slots map[string]entity.PendingSale
}

// NewPendingSaleStore construye el store vacío.
func NewPendingSaleStore() *PendingSaleStore {
	return &PendingSaleStore{slots: make(map[string]entity.PendingSale)}
}

// Park pisa lo que hubiera en el slot. Guarda una foto: mutar el carrito
// del caller después de estacionar no toca lo guardado (misma semántica que
// el backend Redis, que serializa).
func (s *PendingSaleStore) Park(_ context.Context, pending *entity.PendingSale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[pending.SlotID] = snapshot(pending)
	return nil
}

// Recall devuelve el carrito del slot, o nil si está vacío. El caller recibe
// su propia copia; mutarla no afecta el slot.
func (s *PendingSaleStore) Recall(_ context.Context, slotID string) (*entity.PendingSale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending, ok := s.slots[slotID]
	if !ok {
		return nil, nil
	}
	copied := snapshot(&pending)
	return &copied, nil
}

// snapshot copia el PendingSale con su slice de líneas propio.
func snapshot(p *entity.PendingSale) entity.PendingSale {
	copied := *p
	if p.Items != nil {
		copied.Items = make([]entity.CartLine, len(p.Items))
		copy(copied.Items, p.Items)
	}
	return copied
}

// Release borra el slot; borrar un slot vacío no es error.
func (s *PendingSaleStore) Release(_ context.Context, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slotID)
	return nil
}
