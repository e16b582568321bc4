package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/levkar/milim-bot/internal/domain/entities"
	"github.com/levkar/milim-bot/internal/infra/postgres"
)

var ErrFlowNotFound = errors.New("flow state not found")

// FlowRepository stores in-flight interaction flows. Every flow kind has
// its own typed record; the kind column tags which shape the state holds,
// so a record is only ever decoded into the type it was written as.
type FlowRepository struct {
	db postgres.DBTX
}

// NewFlowRepository creates a new FlowRepository with the provided database pool.
func NewFlowRepository(db postgres.DBTX) *FlowRepository {
	return &FlowRepository{db: db}
}

// SaveExercise stores the exercise flow of a user, replacing any previous one.
func (r *FlowRepository) SaveExercise(ctx context.Context, userID int64, flow *entities.ExerciseFlow) error {
	return r.save(ctx, userID, entities.FlowExercise, flow)
}

// SaveAssessment stores the assessment flow of a user, replacing any previous one.
func (r *FlowRepository) SaveAssessment(ctx context.Context, userID int64, flow *entities.AssessmentFlow) error {
	return r.save(ctx, userID, entities.FlowAssessment, flow)
}

// GetExercise retrieves the active exercise flow of a user.
func (r *FlowRepository) GetExercise(ctx context.Context, userID int64) (*entities.ExerciseFlow, error) {
	var flow entities.ExerciseFlow
	if err := r.get(ctx, userID, entities.FlowExercise, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// GetAssessment retrieves the active assessment flow of a user.
func (r *FlowRepository) GetAssessment(ctx context.Context, userID int64) (*entities.AssessmentFlow, error) {
	var flow entities.AssessmentFlow
	if err := r.get(ctx, userID, entities.FlowAssessment, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

// Delete removes the flow of the given kind for a user.
func (r *FlowRepository) Delete(ctx context.Context, userID int64, kind entities.FlowKind) error {
	query := "DELETE FROM flow_states WHERE user_id = $1 AND kind = $2"

	_, err := r.db.Exec(ctx, query, userID, kind)
	if err != nil {
		return fmt.Errorf("delete flow: %w", err)
	}

	return nil
}

func (r *FlowRepository) save(ctx context.Context, userID int64, kind entities.FlowKind, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode %s flow: %w", kind, err)
	}

	query := `
		INSERT INTO flow_states (user_id, kind, state, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, kind) DO UPDATE SET
			state = EXCLUDED.state,
			updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, kind, raw); err != nil {
		return fmt.Errorf("save %s flow: %w", kind, err)
	}

	return nil
}

func (r *FlowRepository) get(ctx context.Context, userID int64, kind entities.FlowKind, dst any) error {
	query := "SELECT state FROM flow_states WHERE user_id = $1 AND kind = $2"

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID, kind).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrFlowNotFound
		}
		return fmt.Errorf("get %s flow: %w", kind, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s flow: %w", kind, err)
	}

	return nil
}
