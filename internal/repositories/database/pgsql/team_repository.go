package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drukbooks/gst_ledger_app/internal/apperrors"
	"github.com/drukbooks/gst_ledger_app/internal/core/domain"
	portsrepo "github.com/drukbooks/gst_ledger_app/internal/core/ports/repositories"
	"github.com/drukbooks/gst_ledger_app/internal/models"
	"github.com/drukbooks/gst_ledger_app/internal/utils/mapping"
)

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for team and membership data.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryFacade {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

const teamColumns = `team_id, name, gst_number, default_currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTeam(row pgx.Row) (*models.Team, error) {
	var m models.Team
	err := row.Scan(
		&m.TeamID,
		&m.Name,
		&m.GstNumber,
		&m.DefaultCurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTeam persists a new team and its creating admin membership atomically.
func (r *PgxTeamRepository) SaveTeam(ctx context.Context, team domain.Team, creatorMembership domain.TeamMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTeam(team)
	teamQuery := `
		INSERT INTO teams (` + teamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, teamQuery,
		m.TeamID,
		m.Name,
		m.GstNumber,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert team "+m.TeamID, err)
	}

	if err := insertTeamMemberInTx(ctx, tx, creatorMembership); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertTeamMemberInTx(ctx context.Context, tx pgx.Tx, membership domain.TeamMember) error {
	m := mapping.ToModelTeamMember(membership)
	query := `
		INSERT INTO team_members (team_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.TeamID,
		m.UserID,
		m.Role,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert membership for user "+m.UserID, err)
	}
	return nil
}

// AddTeamMember adds a user to a team with a specific role.
func (r *PgxTeamRepository) AddTeamMember(ctx context.Context, membership domain.TeamMember) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTeamMemberInTx(ctx, tx, membership); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTeamByID retrieves a team by its ID.
func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_id = $1;`
	m, err := scanTeam(r.Pool.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find team by ID "+teamID, err)
	}
	d := mapping.ToDomainTeam(*m)
	return &d, nil
}

// ListTeamsByUserID retrieves all teams a user belongs to.
func (r *PgxTeamRepository) ListTeamsByUserID(ctx context.Context, userID string) ([]domain.Team, error) {
	query := `
		SELECT t.team_id, t.name, t.gst_number, t.default_currency_code, t.is_active,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.team_id
		WHERE tm.user_id = $1
		ORDER BY t.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query teams for user "+userID, err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		m, err := scanTeam(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan team row for user "+userID, err)
		}
		teams = append(teams, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating team rows for user "+userID, err)
	}

	return mapping.ToDomainTeamSlice(teams), nil
}

// FindTeamMember retrieves the membership of a user in a team.
func (r *PgxTeamRepository) FindTeamMember(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT team_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM team_members
		WHERE team_id = $1 AND user_id = $2;
	`
	var m models.TeamMember
	err := r.Pool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.TeamID,
		&m.UserID,
		&m.Role,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}
	d := mapping.ToDomainTeamMember(m)
	return &d, nil
}
