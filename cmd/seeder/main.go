package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/locvowork/hr_records/internal/bootstrap"
	"github.com/locvowork/hr_records/internal/config"
	"github.com/locvowork/hr_records/internal/database"
	"github.com/locvowork/hr_records/internal/logger"
)

func main() {
	// Define flags
	action := flag.String("action", "seed", "Action to perform: migrate, rollback, seed, clear, reindex")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	employees := flag.Int("employees", 0, "Number of employees (overrides preset)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed; the same seed produces the same dataset")
	adminPassword := flag.String("admin-password", database.DefaultAdminPassword, "Password for "+database.AdminEmail)
	yes := flag.Bool("yes", false, "Skip the confirmation prompt for clear")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("🚀 HR Records Seeder")
	fmt.Println(strings.Repeat("=", 50))

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("❌ Failed to load env config: %v", err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)

	fmt.Println("📡 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, bootstrap.DatabaseConfig())
	if err != nil {
		logger.ErrorLog(ctx, "Failed to initialize database: %v", err)
		log.Fatal(err)
	}
	defer db.Close()

	// Execute action
	switch *action {
	case "migrate":
		performMigrate(db, database.MigrateUp)

	case "rollback":
		performMigrate(db, database.MigrateDown)

	case "seed":
		performMigrate(db, database.MigrateUp)
		seeder := database.NewDataSeeder(db, searchClient(ctx), *seed).WithAdminPassword(*adminPassword)
		performSeed(ctx, seeder, *preset, *employees)

	case "clear":
		performClear(ctx, database.NewDataSeeder(db, nil, *seed), *yes)

	case "reindex":
		search := searchClient(ctx)
		if search == nil {
			log.Fatal("❌ ELASTIC_URL is not set or unreachable")
		}
		n, err := database.NewDataSeeder(db, search, *seed).Reindex(ctx)
		if err != nil {
			log.Fatalf("❌ Reindex failed: %v", err)
		}
		fmt.Printf("🔎 Indexed %d employees\n", n)

	default:
		fmt.Printf("❌ Unknown action: %s\n", *action)
		flag.PrintDefaults()
		return
	}

	fmt.Println("\n✅ Done!")
}

func searchClient(ctx context.Context) *database.ElasticSearchClient {
	url := config.DefaultEnvConfig.ELASTIC_URL
	if url == "" {
		return nil
	}
	es, err := database.NewElasticSearchClient(url)
	if err != nil {
		logger.WarnLog(ctx, "Elasticsearch unavailable at %s: %v", url, err)
		return nil
	}
	return es
}

func performMigrate(db *sql.DB, action string) {
	status, err := database.Migrate(db, action)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	if !status.Applied {
		fmt.Println("📦 Schema has no migrations applied")
		return
	}
	fmt.Printf("📦 Schema at version %d (dirty=%t)\n", status.Version, status.Dirty)
}

func performSeed(ctx context.Context, seeder *database.DataSeeder, preset string, employees int) {
	size := database.GetPresetConfig(database.SeedPreset(preset))
	if employees > 0 {
		size.Employees = employees
		fmt.Printf("📊 Using preset %s with %d employees\n", preset, employees)
	} else {
		fmt.Printf("📊 Using preset: %s\n", preset)
	}

	start := time.Now()
	stats, err := seeder.SeedData(ctx, size)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	fmt.Printf("👥 Employees:   %d\n", stats.Employees)
	fmt.Printf("💰 Payroll:     %d\n", stats.Payroll)
	fmt.Printf("🗓  Attendance:  %d\n", stats.Attendance)
	fmt.Printf("🌴 Leave:       %d\n", stats.Leave)
	fmt.Printf("⭐ Reviews:     %d\n", stats.Reviews)
	fmt.Printf("🔎 Indexed:     %d\n", stats.Indexed)
	fmt.Printf("⏱  Took %s\n", time.Since(start).Round(time.Millisecond))
}

func performClear(ctx context.Context, seeder *database.DataSeeder, yes bool) {
	if !yes {
		fmt.Println("⚠️  This will delete all HR records and users!")
		fmt.Print("Continue? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := seeder.ClearData(ctx); err != nil {
		log.Fatalf("❌ Clear failed: %v", err)
	}
}
