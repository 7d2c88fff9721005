package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Generated("free", puzzle.Stats{Attempts: 40, Duration: time.Millisecond})
	m.Generated("daily", puzzle.Stats{Attempts: 12})
	m.GenerationFailed()
	m.Verified(puzzle.Matched)
	m.Verified(puzzle.NoMatch)
	m.Verified(puzzle.NoMatch)
	m.Completed("free")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gridsGenerated.WithLabelValues("free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("no_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completions.WithLabelValues("free")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.placementAttempts, "wordsearch_placement_attempts"))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Verified(puzzle.AlreadyFound)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wordsearch_verifications_total{outcome="already_found"} 1`)
}
