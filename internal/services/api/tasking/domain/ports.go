package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Validators(ctx context.Context, in ValidatorsInput) ([]ValidatorStat, error)
	Teams(ctx context.Context) ([]Team, error)
	// TeamMembers lists members of one team, or of every team when teamID is 0
	TeamMembers(ctx context.Context, teamID int64) ([]TeamMember, error)
}
