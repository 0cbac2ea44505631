package materialize_schedule

import (
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	materializeSchedule "github.com/velara/FMC-SchedulingService/internal/usecase/materialize_schedule"
	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// TemplateIntervalRequest один интервал недельного шаблона
type TemplateIntervalRequest struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// TemplateDayRequest интервалы шаблона на один день недели
type TemplateDayRequest struct {
	Weekday   int                       `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	Intervals []TemplateIntervalRequest `json:"intervals"`
}

// MaterializeRequest HTTP request model
type MaterializeRequest struct {
	HorizonDays int                  `json:"horizonDays,omitempty"`
	Template    []TemplateDayRequest `json:"template"`
}

// MaterializeResponse HTTP response model
type MaterializeResponse struct {
	SpecialistID  int64  `json:"specialistId"`
	From          string `json:"from"`
	To            string `json:"to"`
	DeletedShifts int64  `json:"deletedShifts"`
	CreatedShifts int    `json:"createdShifts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MaterializeRequest) ToUseCaseRequest(specialistID int64) (*materializeSchedule.Request, error) {
	template := make([]domain.TemplateDay, 0, len(r.Template))
	for _, day := range r.Template {
		intervals := make([]domain.Interval, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			start, err := types.NewTimeStringFromString(iv.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := types.NewTimeStringFromString(iv.EndTime)
			if err != nil {
				return nil, err
			}
			intervals = append(intervals, domain.Interval{Start: start, End: end})
		}
		template = append(template, domain.TemplateDay{
			Weekday:   time.Weekday(day.Weekday),
			Intervals: intervals,
		})
	}

	return &materializeSchedule.Request{
		SpecialistID: specialistID,
		HorizonDays:  r.HorizonDays,
		Template:     template,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *materializeSchedule.Response) *MaterializeResponse {
	return &MaterializeResponse{
		SpecialistID:  resp.SpecialistID,
		From:          resp.From.Format(domain.DateFormat),
		To:            resp.To.Format(domain.DateFormat),
		DeletedShifts: resp.DeletedShifts,
		CreatedShifts: resp.CreatedShifts,
	}
}
