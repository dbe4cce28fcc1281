package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSearchQueriesTotal_Labels(t *testing.T) {
	before := testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("standard", "ok"))
	SearchQueriesTotal.WithLabelValues("standard", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchQueriesTotal.WithLabelValues("standard", "ok")))
}

func TestReferenceCacheLookups_Labels(t *testing.T) {
	c := ReferenceCacheLookups.WithLabelValues("property_type", "hit")
	before := testutil.ToFloat64(c)
	c.Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(c))
}
