package usecase

import (
	"context"
	"errors"
	"strings"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"
	"medimeet-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDoctorPageLimit = 4
	MaxPageLimit           = 100
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrDoctorEmailExists     = errors.New("doctor email already exists")
	ErrInvalidTicketPrice    = errors.New("ticket price must not be negative")
	ErrSpecializationMissing = errors.New("specialization is required")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctors(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type doctorUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	slotCache    service.SlotCache
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	slotCache service.SlotCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		slotCache:    slotCache,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, actor entity.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.TicketPrice.IsNegative() {
		return nil, ErrInvalidTicketPrice
	}
	specialization := strings.TrimSpace(req.Specialization)
	if specialization == "" {
		return nil, ErrSpecializationMissing
	}

	doctor := &entity.Doctor{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Photo:          req.Photo,
		TicketPrice:    req.TicketPrice.Round(2),
		Specialization: specialization,
		Bio:            req.Bio,
		About:          req.About,
		Address:        req.Address,
		Featured:       req.Featured,
		Social: entity.SocialLinks{
			Facebook:  req.Social.Facebook,
			Twitter:   req.Social.Twitter,
			Instagram: req.Social.Instagram,
		},
		Certificates: entity.StringList(req.Certificates),
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintDoctorEmail) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	// A new doctor adds capacity to every cached day of the specialty.
	u.slotCache.InvalidateDoctor(ctx, doctor.ID, doctor.Specialization)

	response := converter.DoctorToResponse(doctor)
	u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), response)

	u.log.Infof("Doctor created: id=%s, specialization=%s", doctor.ID, doctor.Specialization)
	return response, nil
}

// GetDoctors pages through doctors, four per page unless asked otherwise.
func (u *doctorUsecase) GetDoctors(ctx context.Context, query *dto.DoctorListQuery) (*dto.DoctorListResponse, error) {
	page := query.PageQuery.Normalize(DefaultDoctorPageLimit, MaxPageLimit)

	filter := entity.DoctorFilter{
		Specialization: strings.TrimSpace(query.Specialization),
		Featured:       query.Featured,
	}

	doctors, total, err := u.doctorRepo.FindAll(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors:    converter.DoctorsToResponses(doctors),
		Total:      total,
		Page:       page.Page,
		TotalPages: int((total + int64(page.Limit) - 1) / int64(page.Limit)),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// UpdateDoctor applies the fields present in req. Existing bookings keep the
// ticket price they were made with.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldValue := converter.DoctorToResponse(doctor)
	oldSpecialization := doctor.Specialization

	if req.TicketPrice != nil {
		if req.TicketPrice.IsNegative() {
			return nil, ErrInvalidTicketPrice
		}
		doctor.TicketPrice = req.TicketPrice.Round(2)
	}
	if req.Specialization != nil {
		specialization := strings.TrimSpace(*req.Specialization)
		if specialization == "" {
			return nil, ErrSpecializationMissing
		}
		doctor.Specialization = specialization
	}
	if req.Name != nil {
		doctor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		doctor.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Photo != nil {
		doctor.Photo = *req.Photo
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.About != nil {
		doctor.About = *req.About
	}
	if req.Address != nil {
		doctor.Address = *req.Address
	}
	if req.Featured != nil {
		doctor.Featured = *req.Featured
	}
	if req.Social != nil {
		doctor.Social = entity.SocialLinks{
			Facebook:  req.Social.Facebook,
			Twitter:   req.Social.Twitter,
			Instagram: req.Social.Instagram,
		}
	}
	if req.Certificates != nil {
		doctor.Certificates = entity.StringList(req.Certificates)
	}

	if err := u.doctorRepo.Update(ctx, doctor); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintDoctorEmail) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	if doctor.Specialization != oldSpecialization {
		u.slotCache.InvalidateDoctor(ctx, doctor.ID, oldSpecialization)
		u.slotCache.InvalidateDoctor(ctx, doctor.ID, doctor.Specialization)
	}

	response := converter.DoctorToResponse(doctor)
	u.auditService.LogUpdate(ctx, &actor.UserID, entity.AuditActionDoctorUpdate, "doctor", id.String(), oldValue, response)

	return response, nil
}

// DeleteDoctor removes the profile. Its bookings stay, detached from any
// doctor.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	rows, err := u.doctorRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	u.slotCache.InvalidateDoctor(ctx, doctor.ID, doctor.Specialization)
	u.auditService.LogDelete(ctx, &actor.UserID, entity.AuditActionDoctorDelete, "doctor", id.String(), converter.DoctorToResponse(doctor))

	u.log.Infof("Doctor %s deleted by %s", id, actor.UserID)
	return nil
}
