package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/collabsec/ibctl/pkg/ibctl/barrier"
	"github.com/collabsec/ibctl/pkg/ibctl/client"
)

func WriteSegmentTable(w io.Writer, segments []client.Segment) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tPREFIX_GROUP\tID")
	for _, s := range segments {
		id := s.ID
		if id == "" {
			id = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, barrier.PrefixGroup(s.Name), id)
	}
	_ = tw.Flush()
}

func WritePolicyTable(w io.Writer, policies []client.Policy) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tASSIGNED_SEGMENT\tSTATE\tBLOCKED")
	for _, p := range policies {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", p.Name, p.AssignedSegment, string(p.State), len(p.SegmentsBlocked))
	}
	_ = tw.Flush()
}

func WritePolicyTableWide(w io.Writer, policies []client.Policy) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tASSIGNED_SEGMENT\tSTATE\tBLOCKED_SEGMENTS")
	for _, p := range policies {
		blocked := "-"
		if len(p.SegmentsBlocked) > 0 {
			blocked = strings.Join(p.SegmentsBlocked, ",")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.AssignedSegment, string(p.State), blocked)
	}
	_ = tw.Flush()
}

func WritePlanTable(w io.Writer, actions []barrier.Action) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SEGMENT\tACTION\tPOLICY\tBLOCKED")
	for _, a := range actions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.Segment.Name, string(a.Step()), a.PolicyName(), len(a.Blocked))
	}
	_ = tw.Flush()
}

func WriteOutcomeTable(w io.Writer, outcomes []barrier.Outcome) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "POLICY\tSTEP\tRESULT\tTIME")
	for _, o := range outcomes {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Policy, string(o.Step), o.Result(), formatTime(o.Time))
	}
	_ = tw.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
