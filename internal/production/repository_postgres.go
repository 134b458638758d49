package production

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const batchColumns = `
	id, sub_recipe_id, quantity_produced_ml,
	produced_by_user_id, produced_by_name,
	production_date, expiration_date, notes, group_id
`

func scanBatch(row pgx.Row) (*Batch, error) {
	var b Batch
	err := row.Scan(
		&b.ID,
		&b.SubRecipeID,
		&b.QuantityProducedMl,
		&b.ProducedByUserID,
		&b.ProducedByName,
		&b.ProductionDate,
		&b.ExpirationDate,
		&b.Notes,
		&b.GroupID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// BATCH CRUD
// --------------------------------------------------

func (r *PostgresRepository) CreateBatch(ctx context.Context, b *Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO production_batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		b.ID, b.SubRecipeID, b.QuantityProducedMl,
		b.ProducedByUserID, b.ProducedByName,
		b.ProductionDate, b.ExpirationDate, b.Notes, b.GroupID,
	)
	return err
}

func (r *PostgresRepository) GetBatch(ctx context.Context, id string) (*Batch, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+batchColumns+`
		FROM production_batches
		WHERE id = $1
	`, id)
	return scanBatch(row)
}

func (r *PostgresRepository) ListBatches(ctx context.Context, f Filter) ([]Batch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+batchColumns+`
		FROM production_batches
		WHERE ($1 = '' OR sub_recipe_id = $1)
		  AND ($2 = '' OR group_id = $2)
		ORDER BY production_date ASC
	`, f.SubRecipeID, f.GroupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Batch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateBatch(ctx context.Context, id string, patch BatchPatch) (*Batch, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE production_batches
		SET quantity_produced_ml = COALESCE($1, quantity_produced_ml),
		    expiration_date      = COALESCE($2, expiration_date),
		    notes                = COALESCE($3, notes)
		WHERE id = $4
		RETURNING `+batchColumns+`
	`, patch.QuantityProducedMl, patch.ExpirationDate, patch.Notes, id)
	return scanBatch(row)
}

func (r *PostgresRepository) DeleteBatch(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM production_batches WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// ATOMIC SUBMISSION (batch + loss records)
// --------------------------------------------------

func (r *PostgresRepository) SubmitProduction(ctx context.Context, b *Batch, losses []LossRecord) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO production_batches (`+batchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		b.ID, b.SubRecipeID, b.QuantityProducedMl,
		b.ProducedByUserID, b.ProducedByName,
		b.ProductionDate, b.ExpirationDate, b.Notes, b.GroupID,
	)
	if err != nil {
		return err
	}

	for i := range losses {
		if losses[i].ID == "" {
			losses[i].ID = uuid.New().String()
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO loss_entries (
				id, group_id, ingredient_name,
				loss_amount_ml, loss_reason, notes, recorded_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			losses[i].ID, losses[i].GroupID, losses[i].IngredientName,
			losses[i].LossAmountMl, losses[i].LossReason,
			losses[i].Notes, losses[i].RecordedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListLosses(ctx context.Context, groupID string) ([]LossRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, group_id, ingredient_name,
		       loss_amount_ml, loss_reason, notes, recorded_at
		FROM loss_entries
		WHERE ($1 = '' OR group_id = $1)
		ORDER BY recorded_at ASC
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LossRecord, 0)
	for rows.Next() {
		var l LossRecord
		if err := rows.Scan(
			&l.ID, &l.GroupID, &l.IngredientName,
			&l.LossAmountMl, &l.LossReason, &l.Notes, &l.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
