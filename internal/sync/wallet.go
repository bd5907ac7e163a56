package sync

import (
	"context"
	"fmt"

	"github.com/deparrow/console/internal/notify"
	"github.com/deparrow/console/models"
)

// WalletHook is the credits view: balance, transaction history, deposits and
// transfers. Transaction push events merge into both entries without a
// refetch, and earnings additionally raise a one-shot notification.
type WalletHook struct {
	hookBase
}

func newWalletHook(s *Session) *WalletHook {
	return &WalletHook{hookBase: newHookBase(s)}
}

func (h *WalletHook) Attach() {
	if !h.attached.CompareAndSwap(false, true) {
		return
	}
	h.retain(keyWallet)
	h.retain(keyTransactions)
	h.subscribe(models.TopicTransaction, h.onTransaction)
}

func (h *WalletHook) Detach() { h.detach() }

// Balance returns the cached wallet.
func (h *WalletHook) Balance(ctx context.Context) (models.Wallet, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyWallet, func(ctx context.Context) (any, error) {
		return h.session.adapter.GetWallet(ctx)
	}, h.session.defaultOptions())
	if err != nil {
		return models.Wallet{}, err
	}
	return v.(models.Wallet), nil
}

// Transactions returns the cached transaction history, newest first as the
// server orders it.
func (h *WalletHook) Transactions(ctx context.Context) ([]models.Transaction, error) {
	ctx, cancel := h.fetchCtx(ctx)
	defer cancel()

	v, err := h.session.cache.Fetch(ctx, keyTransactions, func(ctx context.Context) (any, error) {
		resp, err := h.session.adapter.ListTransactions(ctx, models.ListOptions{})
		if err != nil {
			return nil, err
		}
		return resp.Transactions, nil
	}, h.session.defaultOptions())
	if err != nil {
		return nil, err
	}
	return v.([]models.Transaction), nil
}

// Deposit adds credits. On success the wallet and history revalidate.
func (h *WalletHook) Deposit(ctx context.Context, amount float64) (models.DepositResponse, error) {
	return Mutate(ctx, h.session, "deposit", func(ctx context.Context) (models.DepositResponse, error) {
		return h.session.adapter.Deposit(ctx, amount)
	}, Effect{
		Invalidate: []string{keyWallet, keyTransactions},
	})
}

// Transfer moves credits to another user.
func (h *WalletHook) Transfer(ctx context.Context, toUserID string, amount float64) error {
	_, err := Mutate(ctx, h.session, "transfer credits", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.session.adapter.TransferCredits(ctx, toUserID, amount)
	}, Effect{
		Invalidate: []string{keyWallet, keyTransactions},
	})
	return err
}

func (h *WalletHook) onTransaction(f models.Frame) {
	ev, ok := h.decodeEvent(f)
	if !ok || ev.Transaction == nil {
		return
	}
	tx := ev.Transaction.Transaction

	// The history merge doubles as replay detection: a transaction id we
	// have already seen must not touch the wallet or notify again.
	applied := false
	merged := h.session.cache.Merge(keyTransactions, func(data any) (any, error) {
		history, _ := data.([]models.Transaction)
		for _, existing := range history {
			if existing.ID == tx.ID {
				return history, nil
			}
		}
		applied = true
		return append([]models.Transaction{tx}, history...), nil
	})
	if !merged {
		// No cached history yet. Remember the transaction so a replayed
		// event dedupes, and leave the entry stale so the first read still
		// fetches the full history.
		h.session.cache.Set(keyTransactions, []models.Transaction{tx})
		h.session.cache.Invalidate(keyTransactions)
		applied = true
	}
	if !applied {
		return
	}

	// The event carries the post-transaction balance, so the wallet entry
	// updates without a refetch.
	h.session.cache.Merge(keyWallet, func(data any) (any, error) {
		wallet, _ := data.(models.Wallet)
		wallet.Balance = ev.Transaction.Balance
		if tx.Type == models.TransactionEarn {
			wallet.Earned += tx.Amount
		}
		return wallet, nil
	})

	if tx.Type == models.TransactionEarn {
		h.session.notifier.Notify(notify.Success, "credits earned",
			fmt.Sprintf("+%.2f credits: %s", tx.Amount, tx.Description))
	}
}
