package barrier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

func TestPolicyName(t *testing.T) {
	require.Equal(t, "Block hr to non-corporate segments", PolicyName("hr"))
}

func TestPlanCreateVersusUpdate(t *testing.T) {
	filtered := segs("hr", "sales")
	policies := []client.Policy{
		{ID: "p-hr", Name: "Block hr to non-corporate segments", AssignedSegment: "hr", State: client.PolicyStateActive},
	}

	actions := Plan(filtered, policies)
	require.Len(t, actions, 2)

	require.Equal(t, "hr", actions[0].Segment.Name)
	require.NotNil(t, actions[0].Existing)
	require.Equal(t, StepUpdate, actions[0].Step())
	require.Equal(t, "p-hr", actions[0].Existing.ID)

	require.Equal(t, "sales", actions[1].Segment.Name)
	require.Nil(t, actions[1].Existing)
	require.Equal(t, StepCreate, actions[1].Step())
	require.Equal(t, "Block sales to non-corporate segments", actions[1].PolicyName())
}

func TestPlanMatchesAssignedSegmentCaseInsensitively(t *testing.T) {
	filtered := segs("HR")
	policies := []client.Policy{{ID: "p-hr", AssignedSegment: "hr"}}

	actions := Plan(filtered, policies)
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].Existing)
}

func TestPlanComputesBlockLists(t *testing.T) {
	filtered := segs("hr", "legal-eu", "legal-us")
	actions := Plan(filtered, nil)
	require.Equal(t, []string{"legal-eu", "legal-us"}, actions[0].Blocked)
	require.Equal(t, []string{"hr"}, actions[1].Blocked)
	require.Equal(t, []string{"hr"}, actions[2].Blocked)
}

func TestOutcomeResult(t *testing.T) {
	ok := Outcome{Policy: "p", Step: StepCreate, Time: time.Now()}
	require.Equal(t, "Success", ok.Result())
	require.True(t, ok.Succeeded())

	failed := Outcome{Policy: "p", Step: StepCreate, Err: &client.HTTPError{StatusCode: 500, Message: "boom"}}
	require.False(t, failed.Succeeded())
	require.Contains(t, failed.Result(), "boom")
}
