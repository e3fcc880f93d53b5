package sqlt

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuilder(t *testing.T) {
	bui := New(MySQLEscaper{})
	require.Equal(t, MySQLEscaper{}, bui.Escaper())
	require.True(t, IsSkip(bui.Skip()))

	out, err := bui.Build(
		`SELECT name FROM users WHERE ?# IN ?a ?{AND block = ?d}`,
		`user_id`, []int{1, 2, 3}, bui.Skip(),
	)
	require.NoError(t, err)
	require.Equal(t, `SELECT name FROM users WHERE user_id IN (1, 2, 3) `, out)

	require.Equal(t, `'it\'s'`, bui.TryBuild(`?`, `it's`))
	require.Panics(t, func() { bui.TryBuild(`?`) })
}

func TestBuilder_default_escaper(t *testing.T) {
	bui := New(nil)
	require.Equal(t, StandardEscaper{}, bui.Escaper())
	require.Equal(t, `'it''s'`, bui.TryBuild(`?`, `it's`))
}

func TestBuilder_DisallowUnused(t *testing.T) {
	loose := New(testEsc)
	require.Equal(t, `1 2`, loose.TryBuild(`? ?{?}`, 1, 2, 3))
	require.Equal(t, `1 `, loose.TryBuild(`? ?{?}`, 1, Skip(), 3))
	require.Equal(t, `select 1`, loose.TryBuild(`select 1`, 1))

	strict := New(testEsc, DisallowUnused(true))
	_, err := strict.Build(`? ?{?}`, 1, 2, 3)
	require.ErrorIs(t, err, ErrUnusedArgument)
	_, err = strict.Build(`select 1`, 1)
	require.ErrorIs(t, err, ErrUnusedArgument)
	require.Equal(t, `1 2 3`, strict.TryBuild(`? ? ?{?}`, 1, 2, 3))
	require.Equal(t, `1 `, New(testEsc, DisallowUnused(false)).TryBuild(`? ?{?}`, 1, Skip(), 3))

	// Other failures are still reported.
	_, err = loose.Build(`? ?`, 1)
	require.ErrorIs(t, err, ErrMissingArgument)
	_, err = loose.Build(`?{`, 1)
	require.ErrorIs(t, err, ErrMalformedTemplate)
}

func TestBuilder_WithCacheSize(t *testing.T) {
	const src = `select ? -- own cache`

	bui := New(testEsc, WithCacheSize(4))
	require.Equal(t, `select 1 -- own cache`, bui.TryBuild(src, 1))
	require.True(t, bui.cache.Has(src))
	require.False(t, prepCache.Has(src))

	uncached := New(testEsc, WithCacheSize(0))
	require.Nil(t, uncached.cache)
	require.Equal(t, `select 2 -- own cache`, uncached.TryBuild(src, 2))
}

func TestBuilder_WithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bui := New(testEsc, WithLogger(zap.New(core)))

	bui.TryBuild(`select ?d`, 7)
	_, err := bui.Build(`select ?d`)
	require.Error(t, err)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	require.Equal(t, `built query`, entries[0].Message)
	fields := entries[0].ContextMap()
	require.Equal(t, `select ?d`, fields[`template`])
	require.Equal(t, `select 7`, fields[`query`])
	require.Equal(t, int64(1), fields[`args`])

	require.Equal(t, `query build failed`, entries[1].Message)
	fields = entries[1].ContextMap()
	require.Equal(t, string(ErrCodeMissingArgument), fields[`code`])
	require.Equal(t, int64(0), fields[`args`])
}

func TestBuilder_WithLogger_nil(t *testing.T) {
	bui := New(testEsc, WithLogger(nil))
	require.NotNil(t, bui.log)
	require.Equal(t, `1`, bui.TryBuild(`?`, 1))
}

func TestBuilder_WithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	bui := New(testEsc, WithMetrics(metrics))

	bui.TryBuild(`?`, 1)
	bui.TryBuild(`?`, 2)
	_, _ = bui.Build(`?{`)
	_, _ = bui.Build(`?`, Skip())

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.Builds.WithLabelValues(resultOk)))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Builds.WithLabelValues(string(ErrCodeMalformedTemplate))))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.Builds.WithLabelValues(string(ErrCodeMisplacedSkip))))
	require.Equal(t, 3, testutil.CollectAndCount(metrics.Builds))
	require.Equal(t, 1, testutil.CollectAndCount(metrics.Duration))

	require.Panics(t, func() { NewMetrics(reg) })
}

func TestMetrics_nil(t *testing.T) {
	var metrics *Metrics
	metrics.observe(nil, 1)

	unregistered := NewMetrics(nil)
	unregistered.observe(errTestEscape, 1)
	require.Equal(t, 1.0, testutil.ToFloat64(unregistered.Builds.WithLabelValues(`unknown`)))
}

func TestBuilder_concurrent(t *testing.T) {
	bui := New(StandardEscaper{}, WithMetrics(NewMetrics(nil)))

	var group sync.WaitGroup
	for ind := 0; ind < 64; ind++ {
		group.Add(1)
		go func(ind int) {
			defer group.Done()
			out, err := bui.Build(`select ?d, ?{?} -- ?`, ind, `x`, `y`)
			if err != nil || out != `select `+itoa(ind)+`, 'x' -- 'y'` {
				t.Errorf(`unexpected build: %q %v`, out, err)
			}
		}(ind)
	}
	group.Wait()

	require.Equal(t, 64.0, testutil.ToFloat64(bui.metrics.Builds.WithLabelValues(resultOk)))
}

func itoa(val int) string { return TryBuild(nil, `?d`, val) }
