package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/trains/:id", "200"))

	RecordHTTPRequest("GET", "/trains/:id", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/trains/:id", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordHTTPRequestUnmatched(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))

	RecordHTTPRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(BookingsTotal.WithLabelValues("no_availability"))

	RecordBooking("no_availability")
	RecordBooking("no_availability")

	assert.Equal(t, before+2, testutil.ToFloat64(BookingsTotal.WithLabelValues("no_availability")))
}
