package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paywall/contexts/finance-core/paywall-ledger/domain/entities"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveOperation("purchase_paywall", nil, 5*time.Millisecond)
	recorder.ObserveOperation("purchase_paywall", nil, 5*time.Millisecond)
	recorder.ObserveOperation("purchase_paywall", errors.New("insufficient funds"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.operations.WithLabelValues("purchase_paywall", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.operations.WithLabelValues("purchase_paywall", "failure")))
}

func TestRecorderSumsSettlements(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveSettlement(entities.Split{Price: 1000, FeeAmount: 100, CreatorAmount: 900})
	recorder.ObserveSettlement(entities.Split{Price: 10, FeeAmount: 1, CreatorAmount: 9})

	assert.Equal(t, 101.0, testutil.ToFloat64(recorder.settled.WithLabelValues("fee_recipient")))
	assert.Equal(t, 909.0, testutil.ToFloat64(recorder.settled.WithLabelValues("creator")))
}

func TestRecorderHandlerExposesRegistry(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveEventPublished("paywall.minted")

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `paywall_ledger_events_published_total{event_type="paywall.minted"} 1`))
}
