// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// One-off backfill for databases created before the name_norm column was
// authoritative: recompute name_norm from name for every item and report
// collisions instead of overwriting them.
//
// Run with: go run scripts/backfill_name_norm.go [-db path] [-dry-run]

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func main() {
	var dbPath string
	var dryRun bool
	flag.StringVar(&dbPath, "db", "", "Path to the prepline database (default ~/.prepline/prepline.db)")
	flag.BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	flag.Parse()

	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(home, ".prepline", "prepline.db")
	}

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	rows, err := database.Query(`SELECT id, name, COALESCE(name_norm, '') FROM items`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to query items: %v\n", err)
		os.Exit(1)
	}

	type item struct {
		id, name, norm string
	}
	var stale []item
	seen := map[string]string{} // norm -> first item ID
	collisions := 0
	for rows.Next() {
		var it item
		if err := rows.Scan(&it.id, &it.name, &it.norm); err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			os.Exit(1)
		}
		want := normalizeName(it.name)
		if prev, ok := seen[want]; ok {
			fmt.Printf("COLLISION: %s and %s both normalize to %q; resolve manually\n", prev, it.id, want)
			collisions++
			continue
		}
		seen[want] = it.id
		if it.norm != want {
			it.norm = want
			stale = append(stale, it)
		}
	}
	rows.Close()

	fmt.Printf("%d item(s) need backfill, %d collision(s)\n", len(stale), collisions)
	if dryRun || len(stale) == 0 {
		return
	}

	tx, err := database.Begin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to begin transaction: %v\n", err)
		os.Exit(1)
	}
	for _, it := range stale {
		if _, err := tx.Exec(`UPDATE items SET name_norm = ? WHERE id = ?`, it.norm, it.id); err != nil {
			tx.Rollback()
			fmt.Fprintf(os.Stderr, "update failed for %s: %v\n", it.id, err)
			os.Exit(1)
		}
		fmt.Printf("✓ %s → %q\n", it.id, it.norm)
	}
	if err := tx.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "commit failed: %v\n", err)
		os.Exit(1)
	}
}
