package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/wellhub/internal/log"
)

func TestCtxWithValues(t *testing.T) {
	tests := map[string]struct {
		ctx   func() context.Context
		kv    log.Kv
		expKv log.Kv
	}{
		"Empty context should store the values.": {
			ctx:   context.Background,
			kv:    log.Kv{"a": 1},
			expKv: log.Kv{"a": 1},
		},

		"Values already on the context should be merged and overridden.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"a": 1, "b": 2})
			},
			kv:    log.Kv{"b": 3, "c": 4},
			expKv: log.Kv{"a": 1, "b": 3, "c": 4},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := log.CtxWithValues(test.ctx(), test.kv)
			assert.Equal(t, test.expKv, log.ValuesFromCtx(ctx))
		})
	}
}

func TestNoopSetValuesOnCtx(t *testing.T) {
	ctx := context.Background()
	got := log.Noop.SetValuesOnCtx(ctx, log.Kv{"a": 1})
	assert.Equal(t, ctx, got)
}
