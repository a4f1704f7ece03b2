package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/config"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-salary-engine/internal/handler/http"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/logger"
	"github.com/cmlabs-hris/hris-salary-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-salary-engine/internal/repository/sqlite"
	payrollService "github.com/cmlabs-hris/hris-salary-engine/internal/service/payroll"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.App.LogLevel, cfg.App.Env, version)
	slog.SetDefault(log)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns)
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	var salaryRepo payroll.SalaryRepository
	switch cfg.Payroll.SalaryStore {
	case config.SalaryStoreSQLite:
		store, err := sqlite.Open(cfg.Payroll.SQLitePath)
		if err != nil {
			slog.Error("Failed to open sqlite salary store", "path", cfg.Payroll.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		salaryRepo = store
	default:
		salaryRepo = postgresql.NewSalaryRepository(db)
	}
	slog.Info("salary store selected", "store", cfg.Payroll.SalaryStore)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	salarySvc := payrollService.NewSalaryService(
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		salaryRepo,
		cfg.Payroll.MaxWorkers,
	)

	payrollHandler := appHTTP.NewPayrollHandler(salarySvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler, appHTTP.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// in-flight bulk runs get time to finish their commits
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
