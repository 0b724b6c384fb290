package handler

import (
	"net/http"

	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/usecase"
	"medimeet-api/pkg/response"
	"medimeet-api/pkg/validator"
)

type AppointmentRecordHandler struct {
	recordUsecase usecase.AppointmentRecordUsecase
	validator     *validator.CustomValidator
}

func NewAppointmentRecordHandler(recordUsecase usecase.AppointmentRecordUsecase, validator *validator.CustomValidator) *AppointmentRecordHandler {
	return &AppointmentRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *AppointmentRecordHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrRecordNotFound:
		response.NotFound(w, "Appointment record not found")
	case usecase.ErrInvalidAppointmentDate, usecase.ErrInvalidTimeSlot, usecase.ErrInvalidRecordStatus:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// CreateRecord handles appointment record creation
// @Summary Create appointment record
// @Tags Records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AppointmentRecordRequest true "Appointment Record Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /records [post]
func (h *AppointmentRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.CreateRecord(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment record")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment record created successfully", record)
}

// GetRecords handles appointment record listing
// @Summary List appointment records
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /records [get]
func (h *AppointmentRecordHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordUsecase.GetRecords(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment records")
		return
	}

	response.Success(w, http.StatusOK, "Appointment records retrieved successfully", records)
}

// GetRecord handles fetching one appointment record
// @Summary Get appointment record
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /records/{id} [get]
func (h *AppointmentRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get appointment record")
		return
	}

	response.Success(w, http.StatusOK, "Appointment record retrieved successfully", record)
}

// UpdateRecord handles appointment record updates
// @Summary Update appointment record
// @Tags Records
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.AppointmentRecordRequest true "Appointment Record Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /records/{id} [put]
func (h *AppointmentRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.AppointmentRecordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.UpdateRecord(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment record")
		return
	}

	response.Success(w, http.StatusOK, "Appointment record updated successfully", record)
}

// DeleteRecord handles appointment record deletion
// @Summary Delete appointment record
// @Tags Records
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /records/{id} [delete]
func (h *AppointmentRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.recordUsecase.DeleteRecord(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete appointment record")
		return
	}

	response.Success(w, http.StatusOK, "Appointment record deleted successfully", nil)
}
