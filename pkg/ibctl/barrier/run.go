package barrier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

// RunOptions control one sync pass. Connect and Disconnect let a caller run
// against an externally managed session.
type RunOptions struct {
	Exclude    string
	Connect    bool
	Disconnect bool
}

// Runner drives the full pipeline: session setup, inventory fetch, filter,
// per-segment reconciliation, bulk apply trigger, teardown. Everything is
// sequential; the inventory is fetched once and treated as read-only for the
// rest of the run.
type Runner struct {
	Client *client.Client
	Log    *zap.SugaredLogger

	// Now is the outcome timestamp source; defaults to time.Now.
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) log() *zap.SugaredLogger {
	if r.Log != nil {
		return r.Log
	}
	return zap.NewNop().Sugar()
}

// Plan fetches the inventory and returns the per-segment actions without
// touching any policy. Session handling follows opts the same way Run does.
func (r *Runner) Plan(ctx context.Context, opts RunOptions) ([]Action, error) {
	excl, err := CompileExclusion(opts.Exclude)
	if err != nil {
		return nil, err
	}
	log := r.log().With("run_id", uuid.NewString())

	if opts.Connect {
		if err := r.Client.Session().Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open management session: %w", err)
		}
	}
	// Disconnect is honored even when the session was established externally.
	defer r.closeSession(ctx, log, opts.Disconnect)

	filtered, policies, err := r.inventory(ctx, log, excl)
	if err != nil {
		return nil, err
	}
	return Plan(filtered, policies), nil
}

// Run executes one full sync pass and returns one outcome per create/update
// attempt plus one for the bulk apply trigger. Session and inventory errors
// are fatal; everything after that is captured in outcomes and the error
// return stays nil.
func (r *Runner) Run(ctx context.Context, opts RunOptions) ([]Outcome, error) {
	excl, err := CompileExclusion(opts.Exclude)
	if err != nil {
		return nil, err
	}
	log := r.log().With("run_id", uuid.NewString())

	if opts.Connect {
		if err := r.Client.Session().Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open management session: %w", err)
		}
	}
	defer r.closeSession(ctx, log, opts.Disconnect)

	filtered, policies, err := r.inventory(ctx, log, excl)
	if err != nil {
		return nil, err
	}

	actions := Plan(filtered, policies)
	outcomes := make([]Outcome, 0, len(actions)+1)
	for _, action := range actions {
		outcome := Execute(ctx, r.Client.Policies(), action, r.now)
		if outcome.Err != nil {
			log.Warnw("Policy operation failed",
				"policy", outcome.Policy,
				"step", string(outcome.Step),
				"error", outcome.Err)
		} else {
			log.Infow("Policy reconciled",
				"policy", outcome.Policy,
				"step", string(outcome.Step),
				"blocked", len(action.Blocked))
		}
		outcomes = append(outcomes, outcome)
	}

	applyOutcome := Outcome{Policy: "All", Step: StepApply, Time: r.now()}
	if _, err := r.Client.Policies().StartApplication(ctx); err != nil {
		applyOutcome.Err = err
		log.Warnw("Bulk apply trigger failed", "error", err)
	} else {
		log.Infow("Bulk apply triggered", "policies", len(actions))
	}
	outcomes = append(outcomes, applyOutcome)

	return outcomes, nil
}

func (r *Runner) inventory(ctx context.Context, log *zap.SugaredLogger, excl *ExclusionMatcher) ([]client.Segment, []client.Policy, error) {
	segments, err := r.Client.Segments().List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list segments: %w", err)
	}
	policies, err := r.Client.Policies().List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list barrier policies: %w", err)
	}
	filtered := FilterSegments(segments, excl)
	log.Infow("Inventory fetched",
		"segments", len(segments),
		"excluded", len(segments)-len(filtered),
		"policies", len(policies),
		"exclude", excl.Pattern())
	return filtered, policies, nil
}

func (r *Runner) closeSession(ctx context.Context, log *zap.SugaredLogger, disconnect bool) {
	if !disconnect {
		return
	}
	if err := r.Client.Session().Close(ctx); err != nil {
		log.Warnw("Failed to close management session", "error", err)
	}
}
