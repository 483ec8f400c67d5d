// Package redis implementa el estacionamiento de ventas pendientes sobre
// Redis: un JSON por slot, SET incondicional (last write wins) y DEL al
// liberar.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/entity"
	"github.com/RoseMODA/rosema-pos-sub001/internal/domain/repository"
)

var _ repository.PendingSaleRepository = (*PendingSaleStore)(nil)

const keyPrefix = "pending_sale:"

// PendingSaleStore guarda carritos estacionados en Redis.
type PendingSaleStore struct {
	client *redis.Client
}

// NewPendingSaleStore crea el cliente Redis.
func NewPendingSaleStore(addr, password string, db int) *PendingSaleStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &PendingSaleStore{client: client}
}

// Ping verifica la conexión.
func (s *PendingSaleStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (s *PendingSaleStore) Close() error {
	return s.client.Close()
}

// Park serializa el carrito y pisa lo que hubiera en el slot.
func (s *PendingSaleStore) Park(ctx context.Context, pending *entity.PendingSale) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("serializar venta pendiente: %w", err)
	}
	// Sin TTL: el carrito queda hasta que se retoma o se libera.
	return s.client.Set(ctx, keyPrefix+pending.SlotID, payload, 0).Err()
}

// Recall devuelve el carrito del slot, o nil si está vacío.
func (s *PendingSaleStore) Recall(ctx context.Context, slotID string) (*entity.PendingSale, error) {
	val, err := s.client.Get(ctx, keyPrefix+slotID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer venta pendiente: %w", err)
	}
	var pending entity.PendingSale
	if err := json.Unmarshal([]byte(val), &pending); err != nil {
		return nil, fmt.Errorf("deserializar venta pendiente: %w", err)
	}
	return &pending, nil
}

// Release borra el slot; borrar un slot vacío no es error.
func (s *PendingSaleStore) Release(ctx context.Context, slotID string) error {
	return s.client.Del(ctx, keyPrefix+slotID).Err()
}
