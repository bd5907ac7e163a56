package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/deparrow/console/models"
)

type walletModel struct {
	wallet       models.Wallet
	transactions []models.Transaction
	err          error
	loaded       bool
	cursor       int

	depositing  bool
	amountInput textinput.Model
}

func newWalletModel() walletModel {
	input := textinput.New()
	input.Placeholder = "amount"
	input.CharLimit = 12
	input.Width = 12
	return walletModel{amountInput: input}
}

func (m walletModel) withData(wallet models.Wallet, transactions []models.Transaction, err error) walletModel {
	m.loaded = true
	m.err = err
	if err == nil {
		m.wallet = wallet
		m.transactions = transactions
		if m.cursor >= len(transactions) {
			m.cursor = max(0, len(transactions)-1)
		}
	}
	return m
}

func (m *walletModel) move(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, len(m.transactions)-1)
}

func (m walletModel) startDeposit() walletModel {
	m.depositing = true
	m.amountInput.SetValue("")
	m.amountInput.Focus()
	return m
}

func (m walletModel) depositAmount() (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(m.amountInput.Value()), 64)
	if err != nil || amount <= 0 {
		return 0, errors.New("enter a positive amount")
	}
	return amount, nil
}

func (m walletModel) View() string {
	if m.err != nil {
		return errorStyle.Render("failed to load wallet: " + m.err.Error())
	}
	if !m.loaded {
		return helpStyle.Render("loading wallet...")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("balance "+formatCredits(m.wallet.Balance)) +
		helpStyle.Render(fmt.Sprintf("   earned %s  spent %s",
			formatCredits(m.wallet.Earned), formatCredits(m.wallet.Spent))) + "\n")
	if m.wallet.Address != "" {
		b.WriteString(helpStyle.Render(m.wallet.Address) + "\n")
	}
	b.WriteString("\n")

	if m.depositing {
		b.WriteString("deposit: " + m.amountInput.View() + helpStyle.Render("  enter confirm, esc abort") + "\n\n")
	}

	if len(m.transactions) == 0 {
		b.WriteString(helpStyle.Render("no transactions"))
		return b.String()
	}
	for i, tx := range m.transactions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		amount := formatCredits(tx.Amount)
		if tx.Type == models.TransactionEarn || tx.Type == models.TransactionDeposit || tx.Type == models.TransactionRefund {
			amount = onlineStyle.Render("+" + amount)
		} else {
			amount = "-" + amount
		}
		b.WriteString(fmt.Sprintf("%s%s %-9s %12s  %s\n",
			cursor,
			tx.Timestamp.Format("01-02 15:04"),
			tx.Type,
			amount,
			truncate(tx.Description, 40),
		))
	}
	return b.String()
}
