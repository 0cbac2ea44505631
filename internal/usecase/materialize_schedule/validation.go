package materialize_schedule

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays < 0 || req.HorizonDays > MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must be in range [0, %d]", ErrInvalidInput, MaxHorizonDays)
	}

	if len(req.Template) == 0 {
		return fmt.Errorf("%w: template must contain at least one day", ErrInvalidInput)
	}

	seen := make(map[time.Weekday]bool, len(req.Template))
	for _, day := range req.Template {
		if day.Weekday < time.Sunday || day.Weekday > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, day.Weekday)
		}
		if seen[day.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %s", ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true

		for i, iv := range day.Intervals {
			if iv.Start.IsZero() || iv.End.IsZero() {
				return fmt.Errorf("%w: %s: interval start and end are required", ErrInvalidInput, day.Weekday)
			}
			if err := iv.Start.Validate(); err != nil {
				return fmt.Errorf("%w: %s: invalid start: %v", ErrInvalidInput, day.Weekday, err)
			}
			if err := iv.End.Validate(); err != nil {
				return fmt.Errorf("%w: %s: invalid end: %v", ErrInvalidInput, day.Weekday, err)
			}
			if !iv.IsValid() {
				return fmt.Errorf("%w: %s: %s", ErrInvalidInterval, day.Weekday, iv)
			}

			// Интервалы одного дня не должны пересекаться; граничащие допустимы
			for _, other := range day.Intervals[:i] {
				if iv.Overlaps(other) {
					return fmt.Errorf("%w: %s: %s overlaps %s", ErrTemplateOverlap, day.Weekday, iv, other)
				}
			}
		}
	}

	return nil
}
