package export

import (
	"errors"
	"fmt"
)

type ScheduleRequest struct {
	PageSize    int32 `json:"pageSize"`
	StartOffset int32 `json:"startOffset"`
	PageCount   int32 `json:"pageCount"`
}

type Schedule struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

var ErrInvalidSchedule = errors.New("invalid schedule")

// ScheduleTasks splits a request into PageCount consecutive pages.
func ScheduleTasks(request ScheduleRequest) ([]Schedule, error) {
	if request.PageSize <= 0 {
		return nil, fmt.Errorf("%w: pageSize must be positive, got %d", ErrInvalidSchedule, request.PageSize)
	}
	if request.StartOffset < 0 || request.PageCount < 0 {
		return nil, fmt.Errorf("%w: startOffset and pageCount must not be negative", ErrInvalidSchedule)
	}
	result := make([]Schedule, 0, request.PageCount)
	for i := int32(0); i < request.PageCount; i++ {
		result = append(result, Schedule{
			Limit:  request.PageSize,
			Offset: request.StartOffset + i*request.PageSize,
		})
	}
	return result, nil
}

func (s Schedule) Validate() error {
	if s.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidSchedule, s.Limit)
	}
	if s.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d", ErrInvalidSchedule, s.Offset)
	}
	return nil
}
