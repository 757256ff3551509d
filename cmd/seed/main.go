package main

import (
	"context"
	"flag"
	"log"

	"github.com/gracebooks/api/internal/config"
	"github.com/gracebooks/api/internal/database"
	"github.com/gracebooks/api/internal/domain"
	"github.com/gracebooks/api/internal/repository"
)

type seedAccount struct {
	code         string
	name         string
	category     domain.AccountCategory
	displayOrder int32
}

// defaultChart is the standard chart of accounts for a congregation's books.
var defaultChart = []seedAccount{
	// Assets
	{"101", "Cash", domain.CategoryCash, 10},
	{"102", "Bank Account", domain.CategoryBankDeposit, 20},
	{"103", "Fixed Deposit", domain.CategoryFixedDeposit, 30},
	{"104", "Accounts Receivable", domain.CategoryAccountsReceivable, 40},

	// Liabilities
	{"201", "Accounts Payable", domain.CategoryAccountsPayable, 50},
	{"202", "Deposits Received", domain.CategoryDepositsReceived, 60},
	{"203", "Borrowings", domain.CategoryBorrowings, 70},

	// Equity
	{"301", "Capital", domain.CategoryCapital, 80},
	{"302", "Retained Surplus", domain.CategoryRetainedSurplus, 90},

	// Revenue
	{"401", "Tithes", domain.CategoryTitheOffering, 100},
	{"402", "Thanksgiving Offerings", domain.CategoryThankOffering, 110},
	{"403", "Special Offerings", domain.CategorySpecialOffering, 120},
	{"404", "Building Fund Offerings", domain.CategoryBuildingOffering, 130},
	{"405", "Interest Income", domain.CategoryInterestIncome, 140},
	{"406", "Other Revenue", domain.CategoryOtherRevenue, 150},

	// Expenses
	{"501", "Personnel", domain.CategoryPersonnelExpense, 160},
	{"502", "Utilities", domain.CategoryUtilityExpense, 170},
	{"503", "Communication", domain.CategoryCommunicationExpense, 180},
	{"504", "Supplies", domain.CategorySuppliesExpense, 190},
	{"505", "Worship", domain.CategoryWorshipExpense, 200},
	{"506", "Education", domain.CategoryEducationExpense, 210},
	{"507", "Missions", domain.CategoryMissionExpense, 220},
	{"508", "Maintenance", domain.CategoryMaintenanceExpense, 230},
	{"509", "Other Expenses", domain.CategoryOtherExpense, 240},
}

func main() {
	// CLI flags
	dbURL := flag.String("database-url", "", "PostgreSQL connection URL")
	migrationsPath := flag.String("migrations", "", "Path to migration files")
	flag.Parse()

	// Fall back to environment configuration
	cfg := config.Load()
	if *dbURL == "" {
		*dbURL = cfg.DatabaseURL
	}
	if *migrationsPath == "" {
		*migrationsPath = cfg.MigrationsPath
	}
	if *dbURL == "" {
		log.Fatal("No database configured: set -database-url or DATABASE_URL")
	}

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, *dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(*dbURL, *migrationsPath); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	repo := repository.NewPostgresRepository(pool)

	created, skipped := 0, 0
	for _, entry := range defaultChart {
		// Check if the account already exists
		existing, err := repo.FindByCode(ctx, entry.code)
		if err != nil {
			log.Fatalf("Failed to check account %s: %v", entry.code, err)
		}
		if existing != nil {
			log.Printf("Account %s '%s' already exists (ID: %s), skipping", existing.Code, existing.Name, existing.ID)
			skipped++
			continue
		}

		order := entry.displayOrder
		account, err := repo.Create(ctx, domain.CreateAccountRequest{
			Code:         entry.code,
			Name:         entry.name,
			Category:     entry.category,
			DisplayOrder: &order,
		})
		if err != nil {
			log.Fatalf("Failed to seed account %s: %v", entry.code, err)
		}
		log.Printf("Created account %s '%s' (ID: %s)", account.Code, account.Name, account.ID)
		created++
	}

	log.Println("Seed completed successfully")
	log.Printf("Accounts created: %d, skipped: %d", created, skipped)
}
