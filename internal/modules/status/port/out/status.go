package out

import "context"

type TokenReader interface {
	Token(ctx context.Context) (string, bool, error)
}

// ProbeAPI issues requests authenticated with an explicit token.
type ProbeAPI interface {
	CurrentUser(ctx context.Context, token string, stored bool) error
	CreateHealthPlan(ctx context.Context, token string, stored bool) (string, error)
	DeletePlan(ctx context.Context, token string, stored bool, planID string) error
}
