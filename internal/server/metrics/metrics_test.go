package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLoginAttemptsTotal_Labels(t *testing.T) {
	c := LoginAttemptsTotal.WithLabelValues("test", ResultSuccess)
	before := testutil.ToFloat64(c)

	c.Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRegistrationsTotal_Labels(t *testing.T) {
	c := RegistrationsTotal.WithLabelValues("student")
	before := testutil.ToFloat64(c)

	c.Add(2)

	assert.Equal(t, before+2, testutil.ToFloat64(c))
}
