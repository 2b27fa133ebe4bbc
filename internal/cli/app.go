package cli

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"payroll-bot/config"
	"payroll-bot/internal/app/service"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
	"payroll-bot/internal/repository/memory"
	"payroll-bot/internal/repository/sqlite"
	"payroll-bot/pkg/workerpool"
)

// App собранные зависимости одной команды.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB

	Employees  domain.EmployeeRepo
	Attendance *sqlite.SqliteAttendanceRepo
	Taxes      *sqlite.SqliteTaxRateRepo
	Scores     *sqlite.SqlitePerformanceRepo

	Pool     *workerpool.WorkerPool
	Async    *service.AsyncService
	Registry *service.EmployeeRegistry
	Payroll  *service.PayrollEngine
	Reports  *service.ReportService
}

// loadApp читает конфиг с учётом флагов и собирает App.
func loadApp(opts *RootOptions) (*App, error) {
	var files []string
	if opts.EnvFile != "" {
		files = append(files, opts.EnvFile)
	}
	cfg, err := config.LoadConfig(files...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return app, nil
}

// NewApp открывает базу и связывает хранилища с сервисами. Справочники
// (явка, ставки, оценки) всегда в SQLite; STORE выбирает только хранилище
// сотрудников.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Attendance: sqlite.NewSqliteAttendanceRepo(db),
		Taxes:      sqlite.NewSqliteTaxRateRepo(db),
		Scores:     sqlite.NewSqlitePerformanceRepo(db),
	}
	switch cfg.Store {
	case config.StoreMemory:
		a.Employees = memory.NewEmployeeRepo()
	default:
		a.Employees = sqlite.NewSqliteEmployeeRepo(db)
	}

	a.Pool = workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	a.Async = service.NewAsyncService(a.Pool)
	a.Registry = service.NewEmployeeRegistry(a.Employees, log)
	a.Payroll = service.NewPayrollEngine(a.Attendance, a.Taxes, a.Scores, log)
	a.Reports = service.NewReportService(a.Employees, a.Payroll, a.Async, log)

	log.Debug("app ready",
		zap.String("store", cfg.Store),
		zap.String("db", cfg.DBPath),
		zap.Int("workers", cfg.Workers))
	return a, nil
}

// Close останавливает пул, затем закрывает базу.
func (a *App) Close() {
	a.Pool.Close()
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("close database", zap.Error(err))
	}
	_ = a.Logger.Sync()
}
