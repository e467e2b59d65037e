// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/scrimtrack/scrim-stats-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrNoMatches signals a legitimately empty scrim history for a team.
// It is a domain error, not a transport failure: callers surface it to the
// user and never cache it.
var ErrNoMatches = errors.New("no matches found for team")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// StatisticsService defines the cached statistics use cases plus the
// invalidation hooks mutating collaborators call after writes.
type StatisticsService interface {
	GetTeamStatistics(ctx context.Context, teamID int64) (model.TeamStatisticsSummary, error)
	GetPlayerStatistics(ctx context.Context, playerID, teamID int64) (model.PlayerStatisticsSummary, error)
	// InvalidateTeam busts the team's summary and every player summary
	// derived from the same match data.
	InvalidateTeam(teamID int64)
	InvalidatePlayer(playerID, teamID int64)
	InvalidateAll()
}

// TeamService defines cached team entity lookups for dashboard scaffolding.
type TeamService interface {
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	ListTeamPlayers(ctx context.Context, teamID int64) ([]model.Player, error)
	Invalidate(teamID int64)
	InvalidateAll()
}
