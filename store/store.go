/*package store records solver results in a SQLite database so that batches
of conditions can be compared after the fact.
*/
package store

import (
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phil-mansfield/gowake/solver"
)

// memoryPath is the DSN used when no database file is given.
const memoryPath = "file::memory:?cache=shared"

// Run is one solved condition.
type Run struct {
	gorm.Model

	Label string `gorm:"index"`

	Speed, Direction    float64
	TurbulenceIntensity float64
	Shear, AirDensity   float64

	WakeModel     string
	Superposition string
	Turbulence    string

	State      string
	Iterations int
	FarmPower  float64

	Turbines []TurbineResult `gorm:"constraint:OnDelete:CASCADE"`
}

// TurbineResult is the operating point of one turbine in a Run.
type TurbineResult struct {
	ID    uint `gorm:"primarykey"`
	RunID uint `gorm:"index"`

	Index int `gorm:"column:turbine_index"`
	Name  string

	Yaw, Tilt          float64
	Velocity           float64
	Ct, AxialInduction float64
	TI, Power          float64
}

var models = []interface{}{&Run{}, &TurbineResult{}}

// Manager owns the database connection.
type Manager struct {
	DB     *gorm.DB
	Path   string
	Logger zerolog.Logger
}

// Open opens (creating if needed) the SQLite database at path and migrates
// its schema. An empty path opens a shared in-memory database.
func Open(path string, log zerolog.Logger) (*Manager, error) {
	m := &Manager{Path: path, Logger: log}

	dsn := path
	if dsn == "" {
		dsn = memoryPath
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database '%s': %w", dsn, err)
	}
	m.DB = db

	if path == "" {
		m.Logger.Info().Msg("Using SQLite DB in memory")
	} else {
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	}

	if err := m.DB.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return m, nil
}

// Close closes the underlying connection.
func (m *Manager) Close() error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save records a solved result under label and returns the stored Run.
func (m *Manager) Save(
	label string, cfg solver.Config, res *solver.Result,
) (*Run, error) {
	if res == nil {
		return nil, errors.New("cannot save a nil result")
	}
	run := NewRun(label, cfg, res)

	err := m.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(run).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	m.Logger.Debug().Uint("id", run.ID).Str("label", label).
		Str("condition", res.Condition.String()).Msg("Saved run")
	return run, nil
}

// NewRun converts a result into its database row without saving it.
func NewRun(label string, cfg solver.Config, res *solver.Result) *Run {
	c := res.Condition
	run := &Run{
		Label:               label,
		Speed:               c.Speed,
		Direction:           c.Direction,
		TurbulenceIntensity: c.TurbulenceIntensity,
		Shear:               c.Shear,
		AirDensity:          c.AirDensity,
		WakeModel:           string(cfg.WakeModel),
		Superposition:       string(cfg.Superposition),
		Turbulence:          string(cfg.Turbulence),
		State:               res.State.String(),
		Iterations:          res.Iterations,
		FarmPower:           res.FarmPower(),
		Turbines:            make([]TurbineResult, len(res.Turbines)),
	}
	for i, ts := range res.Turbines {
		run.Turbines[i] = TurbineResult{
			Index:          i,
			Name:           ts.Name,
			Yaw:            ts.Yaw,
			Tilt:           ts.Tilt,
			Velocity:       ts.Velocity,
			Ct:             ts.Ct,
			AxialInduction: ts.AxialInduction,
			TI:             ts.TI,
			Power:          ts.Power,
		}
	}
	return run
}

// Run returns the stored run with the given id, including its turbines in
// farm order.
func (m *Manager) Run(id uint) (*Run, error) {
	run := &Run{}
	err := m.DB.Preload("Turbines", func(db *gorm.DB) *gorm.DB {
		return db.Order("turbine_index ASC")
	}).First(run, id).Error
	if err != nil {
		return nil, fmt.Errorf("run %d: %w", id, err)
	}
	return run, nil
}

// Runs returns every run stored under label, oldest first, without their
// turbines.
func (m *Manager) Runs(label string) ([]Run, error) {
	var runs []Run
	err := m.DB.Where("label = ?", label).Order("id ASC").Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Delete removes every run stored under label along with its turbines and
// returns how many runs were removed.
func (m *Manager) Delete(label string) (int64, error) {
	var ids []uint
	err := m.DB.Model(&Run{}).Where("label = ?", label).Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var n int64
	err = m.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id IN ?", ids).
			Delete(&TurbineResult{}).Error; err != nil {
			return err
		}
		q := tx.Unscoped().Delete(&Run{}, ids)
		n = q.RowsAffected
		return q.Error
	})
	return n, err
}
