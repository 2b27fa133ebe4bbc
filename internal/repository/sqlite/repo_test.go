package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-bot/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 3; i++ {
		db, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		db.Close()
	}

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	for _, table := range []string{"employees", "attendance", "tax_rates", "performance_scores"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, "table %q", table)
	}
}

func TestEmployeeRepo_SaveAndFind(t *testing.T) {
	repo := NewSqliteEmployeeRepo(openTestDB(t))
	e := domain.Employee{ID: "E1", Name: "Sam", BaseSalary: 30000, BonusRate: 0.1, PerformanceScore: 80}

	_, found, err := repo.FindByID("E1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Save(e))
	got, found, err := repo.FindByID("E1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, e, got)
}

func TestEmployeeRepo_SaveSameIDLastWins(t *testing.T) {
	repo := NewSqliteEmployeeRepo(openTestDB(t))
	require.NoError(t, repo.Save(domain.Employee{ID: "E1", Name: "First", BaseSalary: 1}))
	require.NoError(t, repo.Save(domain.Employee{ID: "E1", Name: "Second", BaseSalary: 2}))

	all, err := repo.GetAllEmployees()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Second", all[0].Name)
}

func TestEmployeeRepo_ConcurrentSaves(t *testing.T) {
	repo := NewSqliteEmployeeRepo(openTestDB(t))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Save(domain.Employee{ID: fmt.Sprintf("C%02d", i), Name: "Emp"}))
		}(i)
	}
	wg.Wait()

	all, err := repo.GetAllEmployees()
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, "C00", all[0].ID)
}

func TestAttendanceRepo_DaysPresent(t *testing.T) {
	repo := NewSqliteAttendanceRepo(openTestDB(t))
	days := []time.Time{
		time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC), // повтор
		time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range days {
		require.NoError(t, repo.RecordAttendance("E1", d))
	}
	require.NoError(t, repo.RecordAttendance("E2", days[0]))

	n, err := repo.DaysPresent("E1", time.November, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.DaysPresent("E1", time.October, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	dates, err := repo.GetAttendance("E1", days[0], days[4])
	require.NoError(t, err)
	assert.Len(t, dates, 4)
	assert.True(t, dates[0].Equal(days[0]))
}

func TestTaxRateRepo(t *testing.T) {
	repo := NewSqliteTaxRateRepo(openTestDB(t))
	e := domain.Employee{ID: "E1"}

	_, ok, err := repo.TaxRate(e)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetTaxRate("E1", 0.1))
	require.NoError(t, repo.SetTaxRate("E1", 0.13))
	rate, ok, err := repo.TaxRate(e)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.13, rate)
}

func TestPerformanceRepo(t *testing.T) {
	repo := NewSqlitePerformanceRepo(openTestDB(t))
	e := domain.Employee{ID: "E1"}

	_, ok, err := repo.EvaluatePerformance(e)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetScore("E1", 85))
	score, ok, err := repo.EvaluatePerformance(e)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 85, score)
}
