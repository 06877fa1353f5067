package dto

import (
	"github.com/nshimizu0918/taskboard/internal/services"
)

// LabelOverviewDTO is the user's full label configuration.
type LabelOverviewDTO struct {
	Statuses   []LabelDTO `json:"statuses"`
	Priorities []LabelDTO `json:"priorities"`
	Tags       []LabelDTO `json:"tags"`
}

// ToLabelOverviewDTO converts a label overview into its response shape
func ToLabelOverviewDTO(overview services.LabelOverview) LabelOverviewDTO {
	dto := LabelOverviewDTO{
		Statuses:   make([]LabelDTO, len(overview.Statuses)),
		Priorities: make([]LabelDTO, len(overview.Priorities)),
		Tags:       make([]LabelDTO, len(overview.Tags)),
	}
	for i, status := range overview.Statuses {
		dto.Statuses[i] = LabelDTO{ID: status.ID, Name: status.Name}
	}
	for i, priority := range overview.Priorities {
		dto.Priorities[i] = LabelDTO{ID: priority.ID, Name: priority.Name}
	}
	for i, tag := range overview.Tags {
		dto.Tags[i] = LabelDTO{ID: tag.ID, Name: tag.Name}
	}
	return dto
}
