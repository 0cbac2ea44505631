package models

import (
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
)

// Request модели

// GetShiftsRequest запрос на получение смен специалиста за период
type GetShiftsRequest struct {
	SpecialistID int64      `json:"specialistId"`
	StartDate    *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate      *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// FacilityDayRequest рабочие часы заведения на один день недели
type FacilityDayRequest struct {
	Weekday   int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsClosed  bool   `json:"isClosed,omitempty"`
}

// UpdateWeeklyHoursRequest запрос на обновление недельного расписания заведения
type UpdateWeeklyHoursRequest struct {
	Days []FacilityDayRequest `json:"days"`
}

// UpdateSlotConfigRequest запрос на изменение шага сетки слотов
type UpdateSlotConfigRequest struct {
	GranularityMinutes int `json:"granularityMinutes"`
}

// Response модели

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID           int64     `json:"id"`
	SpecialistID int64     `json:"specialistId"`
	Date         string    `json:"date"`      // "2026-03-15"
	StartTime    string    `json:"startTime"` // "09:00"
	EndTime      string    `json:"endTime"`   // "17:00"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ShiftListResponse ответ со списком смен
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}

// FacilityDayResponse рабочие часы заведения на один день недели
type FacilityDayResponse struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsClosed  bool   `json:"isClosed"`
}

// WeeklyHoursResponse недельное расписание заведения
type WeeklyHoursResponse struct {
	Days []FacilityDayResponse `json:"days"`
}

// SlotConfigResponse текущая конфигурация сетки слотов
type SlotConfigResponse struct {
	GranularityMinutes int       `json:"granularityMinutes"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainShift конвертирует domain модель в DTO
func FromDomainShift(s *domain.WorkShift) *ShiftResponse {
	if s == nil {
		return nil
	}
	return &ShiftResponse{
		ID:           s.ID,
		SpecialistID: s.SpecialistID,
		Date:         s.Date.Format(domain.DateFormat),
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromDomainShiftList конвертирует список domain моделей в DTO
func FromDomainShiftList(shifts []*domain.WorkShift) *ShiftListResponse {
	resp := &ShiftListResponse{
		Shifts: make([]ShiftResponse, 0, len(shifts)),
	}
	for _, shift := range shifts {
		if shiftResp := FromDomainShift(shift); shiftResp != nil {
			resp.Shifts = append(resp.Shifts, *shiftResp)
		}
	}
	return resp
}

// FromDomainHours конвертирует расписание заведения в DTO
func FromDomainHours(hours []*domain.FacilityHours) *WeeklyHoursResponse {
	resp := &WeeklyHoursResponse{
		Days: make([]FacilityDayResponse, 0, len(hours)),
	}
	for _, h := range hours {
		if h == nil {
			continue
		}
		day := FacilityDayResponse{
			Weekday:  int(h.Weekday),
			IsClosed: h.IsClosed,
		}
		if !h.IsClosed {
			day.OpenTime = h.OpenTime.String()
			day.CloseTime = h.CloseTime.String()
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

// FromDomainSlotConfig конвертирует конфигурацию слотов в DTO
func FromDomainSlotConfig(cfg *domain.SlotConfig) *SlotConfigResponse {
	if cfg == nil {
		return nil
	}
	return &SlotConfigResponse{
		GranularityMinutes: cfg.GranularityMinutes,
		UpdatedAt:          cfg.UpdatedAt,
	}
}
