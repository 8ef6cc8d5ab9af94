package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var wordPattern = regexp.MustCompile(`^[a-z]{1,100}$`)

// Bulk-imports a newline-separated word list at the base price of $1.00.
// Usage: go run scripts/import_words.go wordlist.txt
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/import_words.go <wordlist file>")
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open word list: %v", err)
	}
	defer file.Close()

	stmt, err := db.Prepare(`
		INSERT INTO words (text, price, created_at, updated_at)
		VALUES ($1, 1.00, NOW(), NOW())
		ON CONFLICT (text) DO NOTHING`)
	if err != nil {
		log.Fatalf("Failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	var imported, skipped int
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !wordPattern.MatchString(word) {
			skipped++
			continue
		}

		res, err := stmt.Exec(word)
		if err != nil {
			log.Fatalf("Failed to insert %q: %v", word, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			imported++
		} else {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read word list: %v", err)
	}

	log.Printf("Import complete: %d words imported, %d skipped", imported, skipped)
}
