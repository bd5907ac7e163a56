package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deparrow/console/internal/notify"
	"github.com/deparrow/console/models"
)

func TestWalletHook_TransactionEventUpdatesBalanceWithoutRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().GetWallet(gomock.Any()).Return(models.Wallet{
		Address: "0xabc", Balance: 10, Earned: 100,
	}, nil).Times(1)
	srv.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(models.TransactionListResponse{
		Transactions: []models.Transaction{{ID: "t-1", Type: models.TransactionSpend, Amount: 2}},
	}, nil).Times(1)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	_, err := h.Balance(context.Background())
	require.NoError(t, err)
	_, err = h.Transactions(context.Background())
	require.NoError(t, err)

	push(t, s, models.TopicTransaction, map[string]any{
		"transaction": map[string]any{
			"transaction_id": "t-2",
			"type":           "earn",
			"amount":         5.0,
			"description":    "job j-9 executed",
		},
		"balance": 15.0,
	})

	wallet, err := h.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15.0, wallet.Balance, "push event carries the post-transaction balance")
	assert.Equal(t, 105.0, wallet.Earned)

	history, err := h.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "t-2", history[0].ID, "new transaction is prepended")
}

func TestWalletHook_EarnEventRaisesNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	push(t, s, models.TopicTransaction, map[string]any{
		"transaction": map[string]any{
			"transaction_id": "t-1",
			"type":           "earn",
			"amount":         5.5,
			"description":    "node contribution",
		},
		"balance": 20.0,
	})

	select {
	case note := <-s.Notifications():
		assert.Equal(t, notify.Success, note.Level)
		assert.Equal(t, "credits earned", note.Title)
		assert.Contains(t, note.Message, "5.50")
		assert.Contains(t, note.Message, "node contribution")
	case <-time.After(time.Second):
		t.Fatal("earn event must raise a one-shot notification")
	}
}

func TestWalletHook_SpendEventDoesNotNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	push(t, s, models.TopicTransaction, map[string]any{
		"transaction": map[string]any{
			"transaction_id": "t-1",
			"type":           "spend",
			"amount":         3.0,
		},
		"balance": 7.0,
	})

	select {
	case note := <-s.Notifications():
		t.Fatalf("unexpected notification: %+v", note)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWalletHook_DuplicateTransactionEventIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	srv.EXPECT().GetWallet(gomock.Any()).Return(models.Wallet{
		Balance: 10, Earned: 100,
	}, nil).Times(1)
	srv.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(models.TransactionListResponse{
		Transactions: []models.Transaction{},
	}, nil).Times(1)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	_, err := h.Balance(context.Background())
	require.NoError(t, err)
	_, err = h.Transactions(context.Background())
	require.NoError(t, err)

	event := map[string]any{
		"transaction": map[string]any{
			"transaction_id": "t-1",
			"type":           "earn",
			"amount":         3.0,
			"description":    "job j-7 executed",
		},
		"balance": 13.0,
	}
	push(t, s, models.TopicTransaction, event)
	push(t, s, models.TopicTransaction, event)

	history, err := h.Transactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1, "replayed event must not duplicate the record")

	wallet, err := h.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 103.0, wallet.Earned, "replayed event must not apply the amount twice")
	assert.Equal(t, 13.0, wallet.Balance)

	select {
	case <-s.Notifications():
	case <-time.After(time.Second):
		t.Fatal("first earn event must notify")
	}
	select {
	case note := <-s.Notifications():
		t.Fatalf("replayed event must not notify again: %+v", note)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWalletHook_ReplayBeforeHistoryLoadStillDedupes(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, _ := newTestSession(t, ctrl)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	// No history has been fetched yet; the event itself seeds the entry so
	// the replay is still recognised.
	event := map[string]any{
		"transaction": map[string]any{
			"transaction_id": "t-1",
			"type":           "earn",
			"amount":         2.0,
		},
		"balance": 2.0,
	}
	push(t, s, models.TopicTransaction, event)
	push(t, s, models.TopicTransaction, event)

	select {
	case <-s.Notifications():
	case <-time.After(time.Second):
		t.Fatal("first earn event must notify")
	}
	select {
	case note := <-s.Notifications():
		t.Fatalf("replayed event must not notify again: %+v", note)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWalletHook_DepositInvalidatesWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	s, srv := newTestSession(t, ctrl)

	first := srv.EXPECT().GetWallet(gomock.Any()).Return(models.Wallet{Balance: 10}, nil)
	srv.EXPECT().Deposit(gomock.Any(), 5.0).Return(models.DepositResponse{
		TransactionID: "t-1", Balance: 15,
	}, nil)
	srv.EXPECT().GetWallet(gomock.Any()).Return(models.Wallet{Balance: 15}, nil).After(first)

	h := s.Wallet()
	h.Attach()
	defer h.Detach()

	_, err := h.Balance(context.Background())
	require.NoError(t, err)

	resp, err := h.Deposit(context.Background(), 5.0)
	require.NoError(t, err)
	assert.Equal(t, 15.0, resp.Balance)

	assert.Eventually(t, func() bool {
		wallet, err := h.Balance(context.Background())
		return err == nil && wallet.Balance == 15
	}, time.Second, 5*time.Millisecond)
}
