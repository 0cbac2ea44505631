package get_availability

import (
	"strconv"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	getAvailability "github.com/velara/FMC-SchedulingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SpecialistID       int64    `json:"specialistId"`
	Date               string   `json:"date"`
	GranularityMinutes int      `json:"granularityMinutes"`
	Offers             []string `json:"offers"` // Свободные времена начала, "HH:MM"
	FreeCount          int      `json:"freeCount"`
	FullyBooked        bool     `json:"fullyBooked"`
	NotWorking         bool     `json:"notWorking"`
}

// ToUseCaseRequest собирает запрос use case из path и query параметров
func ToUseCaseRequest(specialistID int64, dateStr, serviceIDStr, excludeBookingIDStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		SpecialistID: specialistID,
		Date:         date,
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if excludeBookingIDStr != "" {
		excludeID, err := strconv.ParseInt(excludeBookingIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeBookingID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	offers := make([]string, 0, len(resp.Offers))
	for _, offer := range resp.Offers {
		offers = append(offers, offer.String())
	}

	return &AvailabilityResponse{
		SpecialistID:       resp.SpecialistID,
		Date:               resp.Date.Format(domain.DateFormat),
		GranularityMinutes: resp.GranularityMinutes,
		Offers:             offers,
		FreeCount:          resp.FreeCount,
		FullyBooked:        resp.FullyBooked,
		NotWorking:         resp.NotWorking,
	}
}
