package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountType classifies an account along the accounting equation. The string
// value is the stable encoding used on the wire and in storage.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// IsDebitIncrease reports whether postings on the debit side increase the
// balance of accounts of this type.
func (t AccountType) IsDebitIncrease() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// IsCreditIncrease reports whether postings on the credit side increase the
// balance of accounts of this type.
func (t AccountType) IsCreditIncrease() bool {
	return !t.IsDebitIncrease()
}

// ParseAccountType decodes the stable string form of an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("invalid account type: %q", s)
}

// AccountTypes returns every account type in declaration order.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeLiability,
		AccountTypeEquity,
		AccountTypeRevenue,
		AccountTypeExpense,
	}
}

// AccountCategory is the concrete ledger category an account belongs to.
// Every category classifies under exactly one AccountType.
type AccountCategory string

const (
	// Assets
	CategoryCash               AccountCategory = "cash"
	CategoryBankDeposit        AccountCategory = "bank_deposit"
	CategoryFixedDeposit       AccountCategory = "fixed_deposit"
	CategoryAccountsReceivable AccountCategory = "accounts_receivable"

	// Liabilities
	CategoryAccountsPayable  AccountCategory = "accounts_payable"
	CategoryDepositsReceived AccountCategory = "deposits_received"
	CategoryBorrowings       AccountCategory = "borrowings"

	// Equity
	CategoryCapital         AccountCategory = "capital"
	CategoryRetainedSurplus AccountCategory = "retained_surplus"

	// Revenue (offerings and other income)
	CategoryTitheOffering    AccountCategory = "tithe_offering"
	CategoryThankOffering    AccountCategory = "thank_offering"
	CategorySpecialOffering  AccountCategory = "special_offering"
	CategoryBuildingOffering AccountCategory = "building_offering"
	CategoryInterestIncome   AccountCategory = "interest_income"
	CategoryOtherRevenue     AccountCategory = "other_revenue"

	// Expenses
	CategoryPersonnelExpense     AccountCategory = "personnel_expense"
	CategoryUtilityExpense       AccountCategory = "utility_expense"
	CategoryCommunicationExpense AccountCategory = "communication_expense"
	CategorySuppliesExpense      AccountCategory = "supplies_expense"
	CategoryWorshipExpense       AccountCategory = "worship_expense"
	CategoryEducationExpense     AccountCategory = "education_expense"
	CategoryMissionExpense       AccountCategory = "mission_expense"
	CategoryMaintenanceExpense   AccountCategory = "maintenance_expense"
	CategoryOtherExpense         AccountCategory = "other_expense"
)

// categoryTypes is the single source of truth for classification. Every
// declared category must appear here exactly once.
var categoryTypes = map[AccountCategory]AccountType{
	CategoryCash:               AccountTypeAsset,
	CategoryBankDeposit:        AccountTypeAsset,
	CategoryFixedDeposit:       AccountTypeAsset,
	CategoryAccountsReceivable: AccountTypeAsset,

	CategoryAccountsPayable:  AccountTypeLiability,
	CategoryDepositsReceived: AccountTypeLiability,
	CategoryBorrowings:       AccountTypeLiability,

	CategoryCapital:         AccountTypeEquity,
	CategoryRetainedSurplus: AccountTypeEquity,

	CategoryTitheOffering:    AccountTypeRevenue,
	CategoryThankOffering:    AccountTypeRevenue,
	CategorySpecialOffering:  AccountTypeRevenue,
	CategoryBuildingOffering: AccountTypeRevenue,
	CategoryInterestIncome:   AccountTypeRevenue,
	CategoryOtherRevenue:     AccountTypeRevenue,

	CategoryPersonnelExpense:     AccountTypeExpense,
	CategoryUtilityExpense:       AccountTypeExpense,
	CategoryCommunicationExpense: AccountTypeExpense,
	CategorySuppliesExpense:      AccountTypeExpense,
	CategoryWorshipExpense:       AccountTypeExpense,
	CategoryEducationExpense:     AccountTypeExpense,
	CategoryMissionExpense:       AccountTypeExpense,
	CategoryMaintenanceExpense:   AccountTypeExpense,
	CategoryOtherExpense:         AccountTypeExpense,
}

// AccountType returns the accounting type this category classifies under.
// Returns the zero value for undeclared categories; callers validate
// membership first via Valid or ParseAccountCategory.
func (c AccountCategory) AccountType() AccountType {
	return categoryTypes[c]
}

// Valid reports whether c is a declared category.
func (c AccountCategory) Valid() bool {
	_, ok := categoryTypes[c]
	return ok
}

// ParseAccountCategory decodes the stable string form of an AccountCategory.
func ParseAccountCategory(s string) (AccountCategory, error) {
	c := AccountCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid account category: %q", s)
	}
	return c, nil
}

// AccountCategories returns every category in declaration order.
func AccountCategories() []AccountCategory {
	return []AccountCategory{
		CategoryCash,
		CategoryBankDeposit,
		CategoryFixedDeposit,
		CategoryAccountsReceivable,
		CategoryAccountsPayable,
		CategoryDepositsReceived,
		CategoryBorrowings,
		CategoryCapital,
		CategoryRetainedSurplus,
		CategoryTitheOffering,
		CategoryThankOffering,
		CategorySpecialOffering,
		CategoryBuildingOffering,
		CategoryInterestIncome,
		CategoryOtherRevenue,
		CategoryPersonnelExpense,
		CategoryUtilityExpense,
		CategoryCommunicationExpense,
		CategorySuppliesExpense,
		CategoryWorshipExpense,
		CategoryEducationExpense,
		CategoryMissionExpense,
		CategoryMaintenanceExpense,
		CategoryOtherExpense,
	}
}

// Account is one entry in the chart of accounts. ID, Code, Type, and Category
// are fixed at construction; the remaining fields change only through the
// repository's partial update and soft delete operations.
type Account struct {
	ID           uuid.UUID
	Code         string
	Name         string
	Type         AccountType
	Category     AccountCategory
	Description  *string
	IsActive     bool
	DisplayOrder int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAccount builds an account from a create request: stamps a fresh id,
// derives the type from the category, and sets both timestamps to the same
// instant. The request is assumed to be validated.
func NewAccount(req CreateAccountRequest) Account {
	now := time.Now().UTC()
	account := Account{
		ID:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		Type:        req.Category.AccountType(),
		Category:    req.Category,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.DisplayOrder != nil {
		account.DisplayOrder = *req.DisplayOrder
	}
	return account
}
