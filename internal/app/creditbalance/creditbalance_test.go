package creditbalance_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/wellhub/internal/app/creditbalance"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage/storagemock"
)

func TestService_Run(t *testing.T) {
	txs := []model.CreditTransaction{
		{ID: "t1", AccountID: "acc", Amount: 100, ActionType: model.CreditActionTopUp},
		{ID: "t2", AccountID: "acc", Amount: -25, ActionType: model.CreditActionToolRun, ResourceID: "r1"},
	}

	tests := map[string]struct {
		mock    func(m *storagemock.MockRepository)
		req     creditbalance.Request
		expResp *creditbalance.Response
		expErr  bool
	}{
		"balance without history": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetBalance", mock.Anything, "acc").Once().Return(75, nil)
			},
			req:     creditbalance.Request{AccountID: "acc"},
			expResp: &creditbalance.Response{AccountID: "acc", Balance: 75},
		},
		"balance with history": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetBalance", mock.Anything, "acc").Once().Return(75, nil)
				m.On("ListCreditTransactions", mock.Anything, "acc").Once().Return(txs, nil)
			},
			req:     creditbalance.Request{AccountID: "acc", WithHistory: true},
			expResp: &creditbalance.Response{AccountID: "acc", Balance: 75, Transactions: txs},
		},
		"missing account should fail": {
			mock:   func(m *storagemock.MockRepository) {},
			req:    creditbalance.Request{},
			expErr: true,
		},
		"balance error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetBalance", mock.Anything, "acc").Once().Return(0, fmt.Errorf("database error"))
			},
			req:    creditbalance.Request{AccountID: "acc"},
			expErr: true,
		},
		"history error should propagate": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetBalance", mock.Anything, "acc").Once().Return(75, nil)
				m.On("ListCreditTransactions", mock.Anything, "acc").Once().Return(nil, fmt.Errorf("database error"))
			},
			req:    creditbalance.Request{AccountID: "acc", WithHistory: true},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			m := storagemock.NewMockRepository(t)
			test.mock(m)

			svc, err := creditbalance.NewService(creditbalance.ServiceConfig{Repository: m})
			require.NoError(err)

			resp, err := svc.Run(context.Background(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				require.NoError(err)
				assert.Equal(test.expResp, resp)
			}
		})
	}
}
