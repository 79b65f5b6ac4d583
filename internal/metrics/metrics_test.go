package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := New(reg)
	first.Fallbacks.WithLabelValues("GetCalculation").Inc()

	second := New(reg)
	second.Fallbacks.WithLabelValues("GetCalculation").Inc()

	if got := testutil.ToFloat64(first.Fallbacks.WithLabelValues("GetCalculation")); got != 2 {
		t.Errorf("fallback count = %v, want 2", got)
	}
}
