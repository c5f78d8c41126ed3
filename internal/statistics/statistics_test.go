package statistics

import (
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRecordBuild(t *testing.T) {
	// GIVEN
	before := testutil.ToFloat64(builds.WithLabelValues("completed"))

	// WHEN
	RecordBuild("completed", 15*time.Millisecond)

	// THEN
	assert.Equal(t, before+1, testutil.ToFloat64(builds.WithLabelValues("completed")))
}

func TestRecordNodes(t *testing.T) {
	// GIVEN
	visitedBefore := testutil.ToFloat64(nodesVisited)
	failuresBefore := testutil.ToFloat64(nodeFailures)

	// WHEN
	RecordNodeVisit()
	RecordNodeVisit()
	RecordNodeFailure()

	// THEN
	assert.Equal(t, visitedBefore+2, testutil.ToFloat64(nodesVisited))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(nodeFailures))
}

func TestHandler_ServesMetrics(t *testing.T) {
	// GIVEN
	RecordNodeVisit()
	server := httptest.NewServer(Handler())
	defer server.Close()

	// WHEN
	response, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Contains(t, string(body), "dir_compare_nodes_visited_total")
}
