package barrier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

// Step labels the phase an outcome row belongs to. The strings are part of
// the CSV log contract.
type Step string

const (
	StepUpdate Step = "Updating Existing Policy"
	StepCreate Step = "Creating New Policy"
	StepApply  Step = "Applying Policy"
)

// Outcome records one create/update/apply attempt. Err is nil on success.
type Outcome struct {
	Policy string
	Step   Step
	Time   time.Time
	Err    error
}

// Result renders the outcome text the CSV log expects.
func (o Outcome) Result() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return "Success"
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// PolicyName is the canonical name for a segment's block policy.
func PolicyName(segment string) string {
	return fmt.Sprintf("Block %s to non-corporate segments", segment)
}

// Action is one planned reconciliation step: create a policy for Segment or
// update Existing in place, forcing Blocked and Active state.
type Action struct {
	Segment  client.Segment
	Existing *client.Policy
	Blocked  []string
}

func (a Action) Step() Step {
	if a.Existing != nil {
		return StepUpdate
	}
	return StepCreate
}

// PolicyName returns the name the action's outcome is logged under: the
// existing policy's name on update, the canonical name on create.
func (a Action) PolicyName() string {
	if a.Existing != nil && a.Existing.Name != "" {
		return a.Existing.Name
	}
	return PolicyName(a.Segment.Name)
}

// Plan pairs every filtered segment with its block list and the existing
// policy assigned to it, if any. Existing policies are matched by assigned
// segment name, case-insensitively.
func Plan(filtered []client.Segment, policies []client.Policy) []Action {
	byAssigned := make(map[string]*client.Policy, len(policies))
	for i := range policies {
		byAssigned[strings.ToLower(policies[i].AssignedSegment)] = &policies[i]
	}

	actions := make([]Action, 0, len(filtered))
	for _, seg := range filtered {
		actions = append(actions, Action{
			Segment:  seg,
			Existing: byAssigned[strings.ToLower(seg.Name)],
			Blocked:  BlockList(seg, filtered),
		})
	}
	return actions
}

// Execute runs one action against the API. The returned outcome carries any
// error instead of propagating it; per-segment failures never abort the run.
func Execute(ctx context.Context, policies *client.PolicyService, action Action, now func() time.Time) Outcome {
	outcome := Outcome{Policy: action.PolicyName(), Step: action.Step(), Time: now()}
	if action.Existing != nil {
		_, err := policies.Update(ctx, action.Existing.ID, client.PolicyUpdateRequest{
			SegmentsBlocked: action.Blocked,
			State:           client.PolicyStateActive,
		})
		outcome.Err = err
		return outcome
	}
	_, err := policies.Create(ctx, client.PolicyCreateRequest{
		Name:            PolicyName(action.Segment.Name),
		AssignedSegment: action.Segment.Name,
		SegmentsBlocked: action.Blocked,
		State:           client.PolicyStateActive,
	})
	outcome.Err = err
	return outcome
}
