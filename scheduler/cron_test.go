package scheduler

import (
	"testing"

	"github.com/robfig/cron/v3"
)

func TestDefaultFeeScheduleParses(t *testing.T) {
	if _, err := cron.ParseStandard(defaultFeeSchedule); err != nil {
		t.Fatalf("default schedule %q does not parse: %v", defaultFeeSchedule, err)
	}
}
