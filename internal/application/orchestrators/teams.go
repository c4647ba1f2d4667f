package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"aiclub/internal/domain/account"
	"aiclub/internal/domain/event"
	"aiclub/internal/domain/team"
)

// EventReader looks up a single event.
type EventReader interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// TeamStoreForOrchestrator defines the store interface needed by team orchestrators.
type TeamStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (team.Team, error)
	CreateWithMembers(ctx context.Context, t team.Team, members []team.Member) error
	Delete(ctx context.Context, id string) error
}

// --- Create Team ---

// CreateTeamInput carries input for the create team orchestrator.
type CreateTeamInput struct {
	EventID     string
	Name        string
	MemberNames []string // teammates besides the caller
	UserID      string
	UserName    string
	UserRole    string
}

// CreateTeamDeps holds dependencies for CreateTeam.
type CreateTeamDeps struct {
	EventStore EventReader
	TeamStore  TeamStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateTeam registers a team of 2-4 members, the caller first.
// PRE: caller is authenticated
// POST: team and roster persisted together, or nothing persisted
// INVARIANT: admins never own teams
func ExecuteCreateTeam(ctx context.Context, input CreateTeamInput, deps CreateTeamDeps) (team.Team, error) {
	t := team.Team{
		Name:      strings.TrimSpace(input.Name),
		EventID:   input.EventID,
		CreatedBy: input.UserID,
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}
	if input.UserRole == account.RoleAdmin {
		return team.Team{}, team.ErrAdminCannotRegister
	}
	if _, err := deps.EventStore.GetByID(ctx, input.EventID); err != nil {
		return team.Team{}, err
	}

	t.ID = deps.GenerateID()
	t.CreatedAt = deps.Now().UTC()
	roster, err := team.BuildRoster(t, input.UserName, input.MemberNames, deps.GenerateID)
	if err != nil {
		return team.Team{}, err
	}
	if err := deps.TeamStore.CreateWithMembers(ctx, t, roster); err != nil {
		return team.Team{}, err
	}

	slog.Info("team_event", "event", "team_created", "team_id", t.ID, "event_id", t.EventID, "members", len(roster), "created_by", t.CreatedBy)
	return t, nil
}

// --- Delete Team ---

// DeleteTeamInput carries input for the delete team orchestrator.
type DeleteTeamInput struct {
	ID       string
	UserID   string
	UserRole string
}

// DeleteTeamDeps holds dependencies for DeleteTeam.
type DeleteTeamDeps struct {
	TeamStore TeamStoreForOrchestrator
}

// ExecuteDeleteTeam removes a team with its roster and scores.
// PRE: caller is authenticated
// POST: no member or score rows reference the team
// INVARIANT: only the creator or an admin may delete
func ExecuteDeleteTeam(ctx context.Context, input DeleteTeamInput, deps DeleteTeamDeps) error {
	t, err := deps.TeamStore.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if !t.CanDelete(input.UserID, input.UserRole == account.RoleAdmin) {
		return team.ErrNotAllowed
	}
	if err := deps.TeamStore.Delete(ctx, t.ID); err != nil {
		return err
	}

	slog.Info("team_event", "event", "team_deleted", "team_id", t.ID, "deleted_by", input.UserID)
	return nil
}
