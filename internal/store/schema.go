package store

import (
	"context"

	"intake-backend/internal/models"

	"github.com/pkg/errors"
)

// baseRecord is the column set the table is created with. Optional columns
// are layered on top by migrations.
type baseRecord struct {
	ID                   uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp            *string `gorm:"column:timestamp"`
	Name                 *string `gorm:"column:nome"`
	Address              *string `gorm:"column:endereco"`
	ChiefComplaint       *string `gorm:"column:queixa_principal"`
	ProblemDuration      *string `gorm:"column:tempo_problema"`
	PainIntensity        *string `gorm:"column:intensidade_dor"`
	PainType             *string `gorm:"column:tipo_dor"`
	AggravatingRelieving *string `gorm:"column:piora_alivia"`
	PriorProblem         *string `gorm:"column:problema_anterior"`
	PriorRelief          *string `gorm:"column:alivio_anterior"`
	MedicalConditions    *string `gorm:"column:condicoes_medicas"`
	TakesMedication      *string `gorm:"column:medicamentos"`
	Medications          *string `gorm:"column:quais_medicamentos"`
	Occupation           *string `gorm:"column:ocupacao"`
	FixedPostures        *string `gorm:"column:posturas_fixas"`
	PhysicalActivity     *string `gorm:"column:atividade_fisica"`
	ActivityKind         *string `gorm:"column:qual_atividade"`
	Numbness             *string `gorm:"column:dormencia"`
	NumbnessLocation     *string `gorm:"column:local_dormencia"`
	Notes                *string `gorm:"column:observacoes"`
	PreferredDate        *string `gorm:"column:data_preferencial"`
	SchedulingNotes      *string `gorm:"column:observacoes_agendamento"`
}

func (baseRecord) TableName() string {
	return models.Table
}

// Migration adds one optional column of models.PatientRecord when the live
// table lacks it. Migrations only ever add columns.
type Migration struct {
	Name   string
	Column string
}

// Migrations run in order on every Initialize.
var Migrations = []Migration{
	{Name: "add_favorito", Column: models.ColFavorite},
}

// Initialize creates the table if it is missing and applies every migration
// whose column is absent. A failed migration is logged and skipped, leaving
// the store without that column until the next Initialize. It returns the
// names of the migrations applied by this call.
func (s *Store) Initialize(ctx context.Context) ([]string, error) {
	m := s.db.WithContext(ctx).Migrator()

	if !m.HasTable(&models.PatientRecord{}) {
		if err := m.CreateTable(&baseRecord{}); err != nil {
			return nil, errors.Wrap(err, "create patients table")
		}
		s.log.WithField("table", models.Table).Info("created table")
	}

	var applied []string
	for _, mig := range s.migrations {
		if m.HasColumn(&models.PatientRecord{}, mig.Column) {
			continue
		}
		if err := m.AddColumn(&models.PatientRecord{}, mig.Column); err != nil {
			s.log.WithError(err).WithField("migration", mig.Name).Error("failed to add column")
			continue
		}
		s.log.WithField("migration", mig.Name).Info("added column")
		applied = append(applied, mig.Name)
	}
	return applied, nil
}
