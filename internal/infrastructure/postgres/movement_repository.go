package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/EngSivaldo/stock-master-uninter/internal/domain/entity"
	"github.com/EngSivaldo/stock-master-uninter/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: la tabla es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento. seq lo asigna la BD (bigserial) y da el
// desempate estable por orden de inserción en los listados.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Date, movement.UserID,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto del más nuevo al más viejo.
// since opcional filtra por fecha mínima.
func (r *MovementRepo) ListByProduct(productID string, since *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, seq, product_id, type, quantity, date, user_id
		FROM movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if since != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *since)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListAll historial completo del más nuevo al más viejo (reporte).
func (r *MovementRepo) ListAll(limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, seq, product_id, type, quantity, date, user_id
		FROM movements ORDER BY date DESC, seq DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
