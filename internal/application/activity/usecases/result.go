package usecases

import (
	"github.com/trackr-io/trackr/internal/application/activity/dto"
	"github.com/trackr-io/trackr/internal/domain/activity"
	"github.com/trackr-io/trackr/internal/shared/query"
)

// ListActivityResult is shared by every activity listing.
type ListActivityResult struct {
	Activities []*dto.ActivityDTO
	Total      int64
	Page       int
	PageSize   int
}

func newListResult(list []*activity.Activity, total int64, page query.PageFilter) *ListActivityResult {
	return &ListActivityResult{
		Activities: dto.ToActivityDTOs(list),
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}
