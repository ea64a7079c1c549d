package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Bootstraps the first admin account. Run once against a fresh database:
//
//	go run ./scripts/seed_admin -name "Ops Admin" -phone +919900000000 -password <secret>
func main() {
	name := flag.String("name", "Admin", "admin display name")
	phone := flag.String("phone", "", "admin phone number (required)")
	password := flag.String("password", "", "admin console password (required)")
	flag.Parse()

	if *phone == "" || *password == "" {
		log.Fatal("both -phone and -password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	connString := os.Getenv("DB_URL")
	if connString == "" {
		log.Fatal("DB_URL is required")
	}

	db, err := sql.Open("postgres", connString)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("❌ Failed to ping database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	var id uint
	err = db.QueryRow(`
		INSERT INTO users (name, phone, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', true, NOW(), NOW())
		ON CONFLICT (phone) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
		RETURNING id`,
		*name, *phone, string(hash),
	).Scan(&id)
	if err != nil {
		log.Fatalf("❌ Failed to seed admin: %v", err)
	}

	log.Printf("✅ Admin user %d ready (phone %s)", id, *phone)
}
