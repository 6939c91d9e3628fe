package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/croc-pos/api/internal/enum"
	"github.com/croc-pos/api/internal/storage"
)

func main() {
	// CLI flags
	email := flag.String("email", "", "Manager email address")
	password := flag.String("password", "", "Manager password")
	dataDir := flag.String("data-dir", "", "Data directory for the CSV tables")
	demo := flag.Bool("demo", false, "Also seed a demo catalog and customers")
	flag.Parse()

	// Fall back to environment variables
	if *email == "" {
		*email = os.Getenv("SEED_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *dataDir == "" {
		*dataDir = os.Getenv("DATA_DIR")
	}

	// Fall back to defaults
	if *email == "" {
		*email = "gerente@croc.com.br"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}
	if *dataDir == "" {
		*dataDir = "data"
	}

	store, err := storage.New(*dataDir)
	if err != nil {
		log.Fatalf("Unable to open data directory: %v", err)
	}

	ctx := context.Background()

	if err := seedManager(ctx, store, *email, *password); err != nil {
		log.Fatalf("Failed to seed manager: %v", err)
	}

	if *demo {
		if err := seedDemoData(ctx, store); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	log.Println("Seed completed successfully")
}

// seedManager creates the manager account if it doesn't exist.
func seedManager(ctx context.Context, store *storage.Store, email, password string) error {
	_, err := store.GetUserByEmail(ctx, email)
	if err == nil {
		log.Printf("User '%s' already exists, skipping", email)
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("check user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := store.CreateUser(ctx, storage.User{Email: email, PasswordHash: string(hashed)}); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	log.Printf("Created manager user '%s'", email)
	return nil
}

// seedDemoData populates a small catalog and a couple of customers so the
// dashboard has something to show right after install.
func seedDemoData(ctx context.Context, store *storage.Store) error {
	existing, err := store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Catalog already has %d products, skipping demo data", len(existing))
		return nil
	}

	products := []storage.CreateProductParams{
		{Name: "Pipoca Doce 100g", Category: enum.ProductCategoryPopcorn, Price: decimal.RequireFromString("8.50"), Quantity: 40},
		{Name: "Pipoca Salgada 100g", Category: enum.ProductCategoryPopcorn, Price: decimal.RequireFromString("7.00"), Quantity: 40},
		{Name: "Pipoca Caramelo 150g", Category: enum.ProductCategoryPopcorn, Price: decimal.RequireFromString("12.00"), Quantity: 25},
		{Name: "Refrigerante Lata", Category: enum.ProductCategoryBeverages, Price: decimal.RequireFromString("6.00"), Quantity: 60},
		{Name: "Agua Mineral 500ml", Category: enum.ProductCategoryBeverages, Price: decimal.RequireFromString("4.00"), Quantity: 60},
		{Name: "Balde Personalizado", Category: enum.ProductCategoryOther, Price: decimal.RequireFromString("25.00"), Quantity: 10},
	}
	for _, p := range products {
		created, err := store.CreateProduct(ctx, p)
		if err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		log.Printf("Created product '%s' (ID: %d)", created.Name, created.ID)
	}

	customers := []storage.CreateCustomerParams{
		{Name: "Maria Silva", TaxID: "12345678909", Address: "Rua das Flores 100", Phone: "11987654321"},
		{Name: "Joao Souza", TaxID: "", Address: "Av. Central 250", Phone: "1134567890"},
	}
	for _, c := range customers {
		created, err := store.CreateCustomer(ctx, c)
		if err != nil {
			return fmt.Errorf("insert customer %q: %w", c.Name, err)
		}
		log.Printf("Created customer '%s' (ID: %d)", created.Name, created.ID)
	}

	return nil
}
