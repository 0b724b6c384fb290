package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRecordNotFound      = errors.New("appointment record not found")
	ErrInvalidRecordStatus = errors.New("status must be confirmed, pending, cancelled or completed")
)

type AppointmentRecordUsecase interface {
	CreateRecord(ctx context.Context, req *dto.AppointmentRecordRequest) (*dto.AppointmentRecordResponse, error)
	GetRecords(ctx context.Context) (*dto.AppointmentRecordListResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*dto.AppointmentRecordResponse, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, req *dto.AppointmentRecordRequest) (*dto.AppointmentRecordResponse, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

type appointmentRecordUsecase struct {
	log        *logrus.Logger
	recordRepo repository.AppointmentRecordRepository
	loc        *time.Location
}

func NewAppointmentRecordUsecase(log *logrus.Logger, recordRepo repository.AppointmentRecordRepository, loc *time.Location) AppointmentRecordUsecase {
	return &appointmentRecordUsecase{
		log:        log,
		recordRepo: recordRepo,
		loc:        loc,
	}
}

func (u *appointmentRecordUsecase) CreateRecord(ctx context.Context, req *dto.AppointmentRecordRequest) (*dto.AppointmentRecordResponse, error) {
	record := &entity.AppointmentRecord{}
	if err := u.apply(record, req); err != nil {
		return nil, err
	}

	if err := u.recordRepo.Create(ctx, record); err != nil {
		u.log.Warnf("Failed to create appointment record: %+v", err)
		return nil, err
	}

	return converter.AppointmentRecordToResponse(record), nil
}

func (u *appointmentRecordUsecase) GetRecords(ctx context.Context) (*dto.AppointmentRecordListResponse, error) {
	records, err := u.recordRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointment records: %+v", err)
		return nil, err
	}

	return &dto.AppointmentRecordListResponse{
		Records: converter.AppointmentRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *appointmentRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*dto.AppointmentRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	return converter.AppointmentRecordToResponse(record), nil
}

func (u *appointmentRecordUsecase) UpdateRecord(ctx context.Context, id uuid.UUID, req *dto.AppointmentRecordRequest) (*dto.AppointmentRecordResponse, error) {
	record, err := u.recordRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment record %s: %+v", id, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if err := u.apply(record, req); err != nil {
		return nil, err
	}

	if err := u.recordRepo.Update(ctx, record); err != nil {
		u.log.Warnf("Failed to update appointment record %s: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentRecordToResponse(record), nil
}

func (u *appointmentRecordUsecase) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	rows, err := u.recordRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment record %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// apply validates req and copies it onto record. A missing status means
// confirmed.
func (u *appointmentRecordUsecase) apply(record *entity.AppointmentRecord, req *dto.AppointmentRecordRequest) error {
	date, err := entity.ParseCalendarDate(req.AppointmentDate, u.loc)
	if err != nil {
		return ErrInvalidAppointmentDate
	}

	slot, ok := entity.ParseTimeSlot(req.TimeSlot)
	if !ok {
		return ErrInvalidTimeSlot
	}

	status := entity.RecordStatusConfirmed
	if req.Status != "" {
		if status, ok = entity.ParseRecordStatus(req.Status); !ok {
			return ErrInvalidRecordStatus
		}
	}

	record.PatientName = strings.TrimSpace(req.PatientName)
	record.DoctorName = strings.TrimSpace(req.DoctorName)
	record.AppointmentDate = date
	record.TimeSlot = slot
	record.Reason = req.Reason
	record.Status = status
	return nil
}
