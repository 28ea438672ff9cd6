package domain

type AuthState string

const (
	AuthUnknown    AuthState = "unknown"
	AuthChecking   AuthState = "checking"
	AuthAuthorized AuthState = "authorized"
	AuthFailed     AuthState = "failed"
)

type GeneratorState string

const (
	GeneratorUnknown     GeneratorState = "unknown"
	GeneratorChecking    GeneratorState = "checking"
	GeneratorOK          GeneratorState = "ok"
	GeneratorUnavailable GeneratorState = "unavailable"
)

// HealthcheckGoal marks the throwaway plan created by the generator probe.
const HealthcheckGoal = "HEALTHCHECK"

const (
	AuthorizedMessage      = "Authorization verified successfully"
	GeneratorPassedMessage = "Generator check passed"
	MissingPlanIDMessage   = "Generator check failed: No plan_id in response"
)

type AuthResult struct {
	State   AuthState
	Message string
}

type GeneratorResult struct {
	State   GeneratorState
	Message string
	// CleanupErr is the swallowed failure of the best-effort delete.
	CleanupErr error
}

func (r AuthResult) OK() bool {
	return r.State == AuthAuthorized
}

func (r GeneratorResult) OK() bool {
	return r.State == GeneratorOK
}
