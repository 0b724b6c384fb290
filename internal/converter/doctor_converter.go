package converter

import (
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	certificates := []string(doctor.Certificates)
	if certificates == nil {
		certificates = []string{}
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		Name:           doctor.Name,
		Email:          doctor.Email,
		Phone:          doctor.Phone,
		Photo:          doctor.Photo,
		TicketPrice:    doctor.TicketPrice.StringFixed(2),
		Specialization: doctor.Specialization,
		Bio:            doctor.Bio,
		About:          doctor.About,
		Address:        doctor.Address,
		Featured:       doctor.Featured,
		Social: dto.SocialLinks{
			Facebook:  doctor.Social.Facebook,
			Twitter:   doctor.Social.Twitter,
			Instagram: doctor.Social.Instagram,
		},
		Certificates: certificates,
		CreatedAt:    doctor.CreatedAt,
		UpdatedAt:    doctor.UpdatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
