package billing

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLabel(t *testing.T) {
	cases := []struct {
		name string
		plan Plan
		want string
	}{
		{
			name: "monthly usd",
			plan: Plan{Product: "Pro", AmountCent: 900, Currency: "usd", Interval: "month"},
			want: "Pro ･ $9/mo",
		},
		{
			name: "yearly usd rounds cents",
			plan: Plan{Product: "Team", AmountCent: 9950, Currency: "usd", Interval: "year"},
			want: "Team ･ $100/yr",
		},
		{
			name: "free plan",
			plan: Plan{Product: "Free", AmountCent: 0, Currency: "usd", Interval: "month"},
			want: "Free ･ $0/mo",
		},
		{
			name: "unknown currency keeps code",
			plan: Plan{Product: "Euro", AmountCent: 500, Currency: "eur", Interval: "month"},
			want: "Euro ･ eur5/mo",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, planLabel(&tc.plan))
		})
	}
}

type countingPlanSource struct {
	calls int
	plan  *Plan
	err   error
}

func (s *countingPlanSource) ActivePlan(_ context.Context, _ string) (*Plan, error) {
	s.calls++
	return s.plan, s.err
}

func TestPlanCache_PassThroughWithoutRedis(t *testing.T) {
	source := &countingPlanSource{plan: &Plan{Label: "Pro ･ $9/mo"}}
	cache := NewPlanCache(source, nil, 0, slog.New(slog.DiscardHandler))

	for range 3 {
		plan, err := cache.ActivePlan(context.Background(), "cus_1")
		require.NoError(t, err)
		assert.Equal(t, "Pro ･ $9/mo", plan.Label)
	}
	// No cache configured, every call reaches the source.
	assert.Equal(t, 3, source.calls)
}

func TestPlanCache_PassThroughError(t *testing.T) {
	source := &countingPlanSource{err: errors.New("upstream down")}
	cache := NewPlanCache(source, nil, 0, slog.New(slog.DiscardHandler))

	_, err := cache.ActivePlan(context.Background(), "cus_1")
	assert.Error(t, err)
}
