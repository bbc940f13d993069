package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
	"github.com/drukbooks/gst_ledger_app/internal/utils/pagination"
)

type PgxActivityRepository struct {
	BaseRepository
}

// newPgxActivityRepository creates a new repository for the audit log.
func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepositoryFacade {
	return &PgxActivityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ActivityRepositoryFacade = (*PgxActivityRepository)(nil)

// SaveActivity appends one audit record outside any mutation transaction.
// Mutating repositories use insertActivityInTx instead so the record commits
// with the mutation it describes.
func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	m := mapping.ToModelActivity(activity)
	query := `
		INSERT INTO activity_log (activity_id, team_id, actor_id, action, entity_kind, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ActivityID,
		m.TeamID,
		m.ActorID,
		m.Action,
		m.EntityKind,
		m.EntityID,
		m.Detail,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert activity record "+m.ActivityID, err)
	}
	return nil
}

// ListActivitiesByTeam retrieves a paginated list of audit records,
// newest first.
func (r *PgxActivityRepository) ListActivitiesByTeam(ctx context.Context, teamID string, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT activity_id, team_id, actor_id, action, entity_kind, entity_id, detail, created_at
		FROM activity_log
		WHERE team_id = $1
	`
	args := []interface{}{teamID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` AND created_at < $2`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query activities for team "+teamID, err)
	}
	defer rows.Close()

	activities := make([]models.Activity, 0, fetchLimit)
	for rows.Next() {
		var m models.Activity
		err := rows.Scan(
			&m.ActivityID,
			&m.TeamID,
			&m.ActorID,
			&m.Action,
			&m.EntityKind,
			&m.EntityID,
			&m.Detail,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan activity row for team "+teamID, err)
		}
		activities = append(activities, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating activity rows for team "+teamID, err)
	}

	var nextTokenVal *string
	if len(activities) > limit {
		last := activities[limit-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextTokenVal = &token
		activities = activities[:limit]
	}

	return mapping.ToDomainActivitySlice(activities), nextTokenVal, nil
}
