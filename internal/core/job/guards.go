package job

import "fmt"

// Role represents a user's role in the portal.
type Role string

const (
	// RoleAdmin is authorized to assign and cancel jobs.
	RoleAdmin Role = "admin"
	// RoleClerk is the field operator performing inspections; sole actor
	// for start, check-in, complete and reject.
	RoleClerk Role = "clerk"
	// RoleAgent creates jobs but cannot drive the lifecycle.
	RoleAgent Role = "agent"
)

// GuardContext provides the context needed for actor-based guard evaluation.
type GuardContext struct {
	ActorID         string
	ActorRole       Role
	AssignedClerkID string // empty when the job has no clerk
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an ErrUnauthorizedActor error if not
// allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s: %w", r.Reason, ErrUnauthorizedActor)
}

// CanAssign evaluates whether the actor may assign a job to a clerk.
// Rule: only admins assign jobs.
func CanAssign(ctx GuardContext) GuardResult {
	if ctx.ActorRole != RoleAdmin {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only admins can assign jobs (actor %s has role %s)", ctx.ActorID, ctx.ActorRole),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCancel evaluates whether the actor may cancel a job.
// Rule: only admins cancel jobs.
func CanCancel(ctx GuardContext) GuardResult {
	if ctx.ActorRole != RoleAdmin {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only admins can cancel jobs (actor %s has role %s)", ctx.ActorID, ctx.ActorRole),
		}
	}
	return GuardResult{Allowed: true}
}

// CanStart evaluates whether the actor may start a job.
// Rule: only the assigned clerk starts their own job.
func CanStart(ctx GuardContext) GuardResult {
	return requireAssignedClerk(ctx, "start")
}

// CanCheckIn evaluates whether the actor may check in at the property.
// Rule: only the assigned clerk checks in on their own job.
func CanCheckIn(ctx GuardContext) GuardResult {
	return requireAssignedClerk(ctx, "check in on")
}

// CanComplete evaluates whether the actor may complete a job.
// Rule: only the assigned clerk completes their own job.
func CanComplete(ctx GuardContext) GuardResult {
	return requireAssignedClerk(ctx, "complete")
}

// CanReject evaluates whether the actor may reject an assignment.
// Rule: only the assigned clerk rejects their own assignment.
func CanReject(ctx GuardContext) GuardResult {
	return requireAssignedClerk(ctx, "reject")
}

// requireAssignedClerk enforces the clerk-ownership rule shared by the
// clerk-driven operations. Ownership is checked even when the job state
// would reject the operation anyway, so unauthorized callers always see the
// same error kind.
func requireAssignedClerk(ctx GuardContext, verb string) GuardResult {
	if ctx.ActorRole != RoleClerk {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only clerks can %s jobs (actor %s has role %s)", verb, ctx.ActorID, ctx.ActorRole),
		}
	}
	if ctx.ActorID != ctx.AssignedClerkID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("clerk %s is not assigned to this job and cannot %s it", ctx.ActorID, verb),
		}
	}
	return GuardResult{Allowed: true}
}
