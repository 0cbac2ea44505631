package save_shift

import (
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	saveShift "github.com/velara/FMC-SchedulingService/internal/usecase/save_shift"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// SaveShiftRequest HTTP request model
// Для POST specialistId берется из URL; для PUT из URL берется shiftId
type SaveShiftRequest struct {
	SpecialistID int64  `json:"specialistId,omitempty"`
	Date         string `json:"date"`      // "2026-03-15"
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "17:00"
}

// ShiftResponse HTTP response model
type ShiftResponse struct {
	ID           int64  `json:"id"`
	SpecialistID int64  `json:"specialistId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SaveShiftRequest) ToUseCaseRequest(specialistID int64, shiftID *int64) (*saveShift.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &saveShift.Request{
		ShiftID:      shiftID,
		SpecialistID: specialistID,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *saveShift.Response) *ShiftResponse {
	return &ShiftResponse{
		ID:           resp.ID,
		SpecialistID: resp.SpecialistID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
