package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/gihansgamage/sms-api/internal/models"
)

func newRegistrationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRegistrationRepositoryCreateWithChildren(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO society_registrations")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registration_advisory_board")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registration_committee_members")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registration_planning_events")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reg := &models.SocietyRegistration{
		ApplicantFullName: "Nimal Perera",
		ApplicantRegNo:    "S12345",
		ApplicantEmail:    "nimal@example.com",
		ApplicantFaculty:  "Science",
		SocietyName:       "Astronomy Society",
		AdvisoryBoard: []models.AdvisoryBoardMember{
			{Name: "Prof. Silva", Designation: "Professor", Department: "Physics"},
		},
		CommitteeMembers: []models.CommitteeMember{
			{RegNo: "S20001", Name: "Kamal"},
		},
		PlanningEvents: []models.PlanningEvent{
			{Month: "March", Activity: "Star gazing night"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	require.NotEmpty(t, reg.ID)
	require.Equal(t, models.StagePendingDean, reg.Status)
	require.Equal(t, reg.SubmittedDate.Year(), reg.Year)
	require.Equal(t, reg.ID, reg.AdvisoryBoard[0].RegistrationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryCreateRollsBackOnChildFailure(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO society_registrations")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registration_committee_members")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	reg := &models.SocietyRegistration{
		SocietyName: "Drama Circle",
		CommitteeMembers: []models.CommitteeMember{
			{RegNo: "S30001", Name: "Sunil"},
		},
	}
	require.Error(t, repo.Create(context.Background(), reg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryAdvanceStage(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	comment := "forwarded"
	params := AdvanceStageParams{
		ID:          "reg-1",
		From:        models.StagePendingDean,
		To:          models.StagePendingAR,
		StagePrefix: "dean",
		ApprovedAt:  time.Now().UTC(),
		Comment:     &comment,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET is_dean_approved = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AdvanceStage(context.Background(), params))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET is_dean_approved = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.AdvanceStage(context.Background(), params)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryFinalizeCreatesSociety(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	params := AdvanceStageParams{
		ID:          "reg-1",
		From:        models.StagePendingVC,
		To:          models.StageApproved,
		StagePrefix: "vc",
		ApprovedAt:  time.Now().UTC(),
	}
	society := &models.Society{SocietyName: "Astronomy Society", Year: 2026, Faculty: "Science"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET is_vc_approved = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(society.SocietyName).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO societies")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Finalize(context.Background(), params, society))
	require.NotEmpty(t, society.ID)
	require.Equal(t, models.SocietyActive, society.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryFinalizeSkipsExistingSociety(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	params := AdvanceStageParams{
		ID:          "reg-2",
		From:        models.StagePendingVC,
		To:          models.StageApproved,
		StagePrefix: "vc",
		ApprovedAt:  time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET is_vc_approved = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	society := &models.Society{SocietyName: "Astronomy Society", Year: 2026}
	require.NoError(t, repo.Finalize(context.Background(), params, society))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryFinalizeConflictRollsBack(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	params := AdvanceStageParams{
		ID:          "reg-3",
		From:        models.StagePendingVC,
		To:          models.StageApproved,
		StagePrefix: "vc",
		ApprovedAt:  time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET is_vc_approved = TRUE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Finalize(context.Background(), params, &models.Society{SocietyName: "Chess Club"})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryReject(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET status = $1, rejection_reason = $2")).
		WithArgs(models.StageRejected, "incomplete application", "reg-1", models.StagePendingDean).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Reject(context.Background(), "reg-1", models.StagePendingDean, "incomplete application"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE society_registrations SET status = $1, rejection_reason = $2")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Reject(context.Background(), "reg-1", models.StagePendingDean, "incomplete application")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryExistsByNameAndYear(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("Astronomy Society", 2026).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByNameAndYear(context.Background(), "Astronomy Society", 2026)
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
