// Package business holds the invoice and expense ledger of the business suite.
package business

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/legalchicks/lcen-portal/internal/server/models"
)

type Repository interface {
	Invoices(ctx context.Context) ([]models.Invoice, error)
	Expenses(ctx context.Context) ([]models.Expense, error)
	// AddExpense assigns id and date and stores e as the newest expense.
	AddExpense(ctx context.Context, e models.Expense) (models.Expense, error)
}

var seedInvoices = []models.Invoice{
	{ID: "INV-001", ClientName: "Cagayan Valley Hotel", Amount: 12500, Status: models.InvoicePaid, DueDate: "2024-06-30", IssuedDate: "2024-06-15"},
	{ID: "INV-002", ClientName: "Tuguegarao Grand Restaurant", Amount: 8200, Status: models.InvoicePending, DueDate: "2024-07-15", IssuedDate: "2024-07-01"},
	{ID: "INV-003", ClientName: "Isabela Local Market Coop", Amount: 15300, Status: models.InvoicePending, DueDate: "2024-07-20", IssuedDate: "2024-07-05"},
	{ID: "INV-004", ClientName: "Local Bake Shop", Amount: 4500, Status: models.InvoiceOverdue, DueDate: "2024-06-25", IssuedDate: "2024-06-10"},
}

var seedExpenses = []models.Expense{
	{ID: "EXP-001", Date: "2024-07-01", Category: "Feeds", Description: "50 bags of grower pellets", Amount: 87500},
	{ID: "EXP-002", Date: "2024-07-03", Category: "Vitamins", Description: "Immunity boosters pack", Amount: 3000},
	{ID: "EXP-003", Date: "2024-06-28", Category: "Utilities", Description: "Electricity bill for June", Amount: 4200},
	{ID: "EXP-004", Date: "2024-06-25", Category: "Equipment", Description: "New automatic drinkers (5 units)", Amount: 1250},
}

// MemoryRepository is the process-lifetime ledger, seeded with demo rows.
type MemoryRepository struct {
	mu       sync.RWMutex
	invoices []models.Invoice
	expenses []models.Expense
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		invoices: append([]models.Invoice(nil), seedInvoices...),
		expenses: append([]models.Expense(nil), seedExpenses...),
		now:      time.Now,
	}
}

// WithClock replaces the clock used to date new expenses.
func (r *MemoryRepository) WithClock(now func() time.Time) *MemoryRepository {
	r.now = now
	return r
}

func (r *MemoryRepository) Invoices(ctx context.Context) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Invoice(nil), r.invoices...), nil
}

func (r *MemoryRepository) Expenses(ctx context.Context) ([]models.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Expense(nil), r.expenses...), nil
}

func (r *MemoryRepository) AddExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = fmt.Sprintf("EXP-00%d", len(r.expenses)+1)
	e.Date = r.now().UTC().Format(time.DateOnly)
	r.expenses = append([]models.Expense{e}, r.expenses...)
	return e, nil
}
