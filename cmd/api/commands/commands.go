package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailysync/core/internal/adapters/repository"
	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/config"
	"github.com/dailysync/core/internal/infrastructure/database"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/infrastructure/mailer"
	"github.com/dailysync/core/internal/infrastructure/scheduler"
	"github.com/dailysync/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the DailySync API server",
		Long:  "Start the DailySync API server with all configured routes, middleware and the reminder scheduler",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up", 0)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down", 0)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the system",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			team, _ := cmd.Flags().GetString("team")

			if name == "" || email == "" || password == "" {
				log.Fatal("Name, email and password are required")
			}

			createUser(name, email, password, role, team)
		},
	}

	createUserCmd.Flags().String("name", "", "Display name (required)")
	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("role", "member", "User role (member, lead, admin)")
	createUserCmd.Flags().String("team", "", "Team name")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewRemindCommand creates the one-shot reminder sweep command.
func NewRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send standup reminder mail to users who have not submitted today",
		Run: func(cmd *cobra.Command, args []string) {
			runReminders()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print DailySync version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fmt.Println("DailySync Core")
				return
			}
			fmt.Printf("DailySync Core v%s\n", cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	smtpMailer := mailer.New(cfg.SMTP, appLogger)

	srv, err := server.New(cfg, db, smtpMailer, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Reminder.Enabled {
		reminderService := srv.ReminderService()
		sched, err = scheduler.New(cfg.Reminder.Schedule, cfg.App.Location(), func(ctx context.Context) {
			if _, err := reminderService.Run(ctx); err != nil {
				appLogger.Errorw("Scheduled reminder run failed", "error", err)
			}
		}, appLogger)
		if err != nil {
			appLogger.Fatalw("Failed to initialize reminder scheduler", "error", err)
		}
		sched.Start()
	}

	appLogger.Infow("Starting DailySync API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"reminders_enabled", cfg.Reminder.Enabled,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Infow("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if sched != nil {
		sched.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
	}
}

func runReminders() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db.DB)
	standupRepo := repository.NewStandupRepository(db.DB)
	smtpMailer := mailer.New(cfg.SMTP, appLogger)

	reminderService := services.NewReminderService(userRepo, standupRepo, smtpMailer, cfg.App.Location(), appLogger)

	result, err := reminderService.Run(context.Background())
	if err != nil {
		appLogger.Fatalw("Reminder run failed", "error", err)
	}

	fmt.Printf("Reminder sweep complete:\n")
	fmt.Printf("  Scanned: %d\n", result.Scanned)
	fmt.Printf("  Skipped: %d\n", result.Skipped)
	fmt.Printf("  Sent:    %d\n", result.Sent)
	fmt.Printf("  Failed:  %d\n", result.Failed)
}

func runMigration(direction string, steps int) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func createUser(name, email, password, role, team string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userRole := entities.UserRole(strings.ToLower(role))
	if !userRole.IsValid() {
		log.Fatalf("Invalid role %q (must be member, lead or admin)", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	user := &entities.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hashedPassword),
		Role:         userRole,
		Team:         strings.TrimSpace(team),
	}

	if err := userRepo.Create(context.Background(), user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID:    %s\n", user.ID)
	fmt.Printf("  Name:  %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role:  %s\n", user.Role)
	if user.Team != "" {
		fmt.Printf("  Team:  %s\n", user.Team)
	}
}
