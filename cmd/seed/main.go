// Package main provides a CLI tool for seeding the database with a demo
// tenant: two users, a small catalog, and enough events to exercise the
// reports.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	appctx "inventaris/internal/core/context"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/auth"
	"inventaris/internal/infrastructure/storage/postgres"
	"inventaris/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedDemoTenant(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed demo tenant", "error", err)
	}

	log.Info("seeding complete")
}

func seedDemoTenant(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	companyID := id.New()

	ownerID, err := seedUser(ctx, pool, companyID, "owner@demo.local", "Demo Owner", appctx.RoleOwner)
	if err != nil {
		return err
	}
	adminID, err := seedUser(ctx, pool, companyID, "admin@demo.local", "Demo Admin", appctx.RoleAdmin)
	if err != nil {
		return err
	}
	log.Infow("users seeded", "company_id", companyID, "owner_id", ownerID, "admin_id", adminID)

	// Catalog: two divisions, the admin only sees the first.
	warehouseDiv, err := seedDivision(ctx, pool, companyID, "Gudang Utama")
	if err != nil {
		return err
	}
	storeDiv, err := seedDivision(ctx, pool, companyID, "Toko")
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO user_divisions (user_id, division_id) VALUES ($1, $2)`,
		adminID, warehouseDiv,
	); err != nil {
		return fmt.Errorf("grant division: %w", err)
	}

	drinksGroup, err := seedGroup(ctx, pool, companyID, warehouseDiv, "Minuman")
	if err != nil {
		return err
	}
	snacksGroup, err := seedGroup(ctx, pool, companyID, storeDiv, "Makanan Ringan")
	if err != nil {
		return err
	}

	water, err := seedItem(ctx, pool, companyID, drinksGroup, "Air Mineral 600ml", "0001", "botol", "10")
	if err != nil {
		return err
	}
	chips, err := seedItem(ctx, pool, companyID, snacksGroup, "Keripik Singkong", "0002", "bungkus", "5")
	if err != nil {
		return err
	}
	log.Infow("catalog seeded", "divisions", 2, "groups", 2, "items", 2)

	// Events: opening, movements, one adjustment.
	if _, err := pool.Exec(ctx,
		`INSERT INTO opening_balances (id, company_id, item_id, qty, price_per_unit, note, opening_date, created_by)
		 VALUES ($1, $2, $3, 100, 3000, 'Saldo awal', '2026-01-01', $4)`,
		id.New(), companyID, water, ownerID,
	); err != nil {
		return fmt.Errorf("seed opening: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO transactions (id, company_id, item_id, type, qty, price_per_unit, txn_date, created_by)
		 VALUES ($1, $2, $3, 'IN', 50, 3200, '2026-01-10', $4)`,
		id.New(), companyID, water, ownerID,
	); err != nil {
		return fmt.Errorf("seed txn in: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO transactions (id, company_id, item_id, type, qty, txn_date, created_by)
		 VALUES ($1, $2, $3, 'OUT', 30, '2026-01-15', $4)`,
		id.New(), companyID, water, ownerID,
	); err != nil {
		return fmt.Errorf("seed txn out: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO adjustments (id, company_id, item_id, qty_delta, note, adj_date, created_by)
		 VALUES ($1, $2, $3, -5, 'Stock opname', '2026-01-20', $4)`,
		id.New(), companyID, water, ownerID,
	); err != nil {
		return fmt.Errorf("seed adjustment: %w", err)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO transactions (id, company_id, item_id, type, qty, price_per_unit, txn_date, created_by)
		 VALUES ($1, $2, $3, 'IN', 40, 1500, '2026-01-05', $4)`,
		id.New(), companyID, chips, ownerID,
	); err != nil {
		return fmt.Errorf("seed chips txn: %w", err)
	}

	log.Infow("events seeded", "company_id", companyID)
	log.Infow("demo credentials", "owner", "owner@demo.local", "admin", "admin@demo.local", "password", "demo1234")
	return nil
}

func seedUser(ctx context.Context, pool *postgres.Pool, companyID id.ID, email, name, role string) (id.ID, error) {
	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return id.Nil(), err
	}

	userID := id.New()
	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, company_id, email, name, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING`,
		userID, companyID, email, name, role, hash,
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("seed user %s: %w", email, err)
	}
	return userID, nil
}

func seedDivision(ctx context.Context, pool *postgres.Pool, companyID id.ID, name string) (id.ID, error) {
	divisionID := id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO divisions (id, company_id, name) VALUES ($1, $2, $3)`,
		divisionID, companyID, name,
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("seed division %s: %w", name, err)
	}
	return divisionID, nil
}

func seedGroup(ctx context.Context, pool *postgres.Pool, companyID, divisionID id.ID, name string) (id.ID, error) {
	groupID := id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO item_groups (id, company_id, division_id, name) VALUES ($1, $2, $3, $4)`,
		groupID, companyID, divisionID, name,
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("seed group %s: %w", name, err)
	}
	return groupID, nil
}

func seedItem(ctx context.Context, pool *postgres.Pool, companyID, groupID id.ID, name, sku, unit, minStock string) (id.ID, error) {
	itemID := id.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, company_id, group_id, name, sku, unit, min_stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		itemID, companyID, groupID, name, sku, unit, minStock,
	)
	if err != nil {
		return id.Nil(), fmt.Errorf("seed item %s: %w", name, err)
	}
	return itemID, nil
}
