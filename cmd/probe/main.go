// Probe inspects a live Supabase project over its REST API: connection
// check, table discovery, schema inspection, exact row counts and the
// user_settings contents. Connection settings come from .env.local
// (SUPABASE_URL, SUPABASE_ANON_KEY).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/quoc48/expense-tracker/internal/clients/postgrest"
	"github.com/quoc48/expense-tracker/internal/config"
	"github.com/quoc48/expense-tracker/internal/model/customerr"
)

const (
	envFile      = ".env.local"
	probeTimeout = 5 * time.Second
)

var knownTables = []string{"categories", "expenses", "user_settings"}

func main() {
	command := "connection"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.SupabaseFromEnv(envFile)
	if err != nil {
		fmt.Println("cannot load configuration:", err)
		os.Exit(1)
	}

	client := postgrest.New(cfg, nil, postgrest.WithTimeout(probeTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	fmt.Println("ExpenseTracker - Supabase probe")
	fmt.Println("================================")
	fmt.Println("URL:", cfg.URL())
	fmt.Println()

	switch command {
	case "connection":
		err = probeConnection(ctx, client)
	case "tables":
		err = probeTables(ctx, client)
	case "schema":
		err = probeSchema(ctx, client)
	case "count":
		err = probeCounts(ctx, client)
	case "settings":
		err = probeSettings(ctx, client)
	default:
		fmt.Println("usage: probe [connection|tables|schema|count|settings]")
		os.Exit(2)
	}

	if err != nil {
		fmt.Println("\nprobe failed:", err)
		os.Exit(1)
	}
}

func probeConnection(ctx context.Context, client *postgrest.Client) error {
	err := client.Ping(ctx)
	switch {
	case err == nil:
		fmt.Println("OK: REST endpoint reachable, anon key accepted")
		return nil
	case customerr.HasStatus(err, 401):
		fmt.Println("AUTH ERROR: the anon key was rejected")
		return err
	default:
		fmt.Println("CONNECTION ERROR")
		return err
	}
}

func probeTables(ctx context.Context, client *postgrest.Client) error {
	var firstErr error
	for _, table := range knownTables {
		var rows []map[string]any
		err := client.Select(ctx, table, postgrest.NewQuery().Limit(1), &rows)
		switch {
		case err == nil:
			fmt.Printf("%-14s exists (%d sample row)\n", table, len(rows))
		case customerr.HasStatus(err, 404):
			fmt.Printf("%-14s MISSING\n", table)
		default:
			fmt.Printf("%-14s error: %v\n", table, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func probeSchema(ctx context.Context, client *postgrest.Client) error {
	for _, table := range knownTables {
		fmt.Println("Table:", table)

		var rows []map[string]any
		if err := client.Select(ctx, table, postgrest.NewQuery().Limit(1), &rows); err != nil {
			fmt.Println("  cannot fetch:", err)
			fmt.Println()
			continue
		}
		if len(rows) == 0 {
			fmt.Println("  no rows, columns unknown")
			fmt.Println()
			continue
		}

		columns := make([]string, 0, len(rows[0]))
		for col := range rows[0] {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		fmt.Printf("  columns (%d):\n", len(columns))
		for _, col := range columns {
			fmt.Printf("    %-18s %s\n", col, describeValue(rows[0][col]))
		}
		fmt.Println()
	}
	return nil
}

func probeCounts(ctx context.Context, client *postgrest.Client) error {
	var firstErr error
	for _, table := range knownTables {
		count, err := client.Count(ctx, table, postgrest.NewQuery())
		if err != nil {
			fmt.Printf("%-14s count failed: %v\n", table, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Printf("%-14s %d rows\n", table, count)
	}
	return firstErr
}

func probeSettings(ctx context.Context, client *postgrest.Client) error {
	var rows []map[string]any
	if err := client.Select(ctx, "user_settings", postgrest.NewQuery().Limit(5), &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("user_settings is empty")
		return nil
	}

	pretty, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("user_settings (%d rows shown):\n%s\n", len(rows), pretty)
	return nil
}

func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
