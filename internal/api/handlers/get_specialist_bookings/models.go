package get_specialist_bookings

import (
	"strconv"
	"time"

	"github.com/velara/FMC-SchedulingService/internal/domain"
	"github.com/velara/FMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из path и query параметров
func ToServiceRequest(specialistID int64, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetSpecialistBookingsRequest, error) {
	req := &models.GetSpecialistBookingsRequest{
		SpecialistID: specialistID,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
