package suggest_slots

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	suggestSlots "github.com/m04kA/SMC-CalendarService/internal/usecase/suggest_slots"
)

// SuggestSlotsRequest HTTP request model
type SuggestSlotsRequest struct {
	Start           string `json:"start"` // "2025-01-06T00:00"
	End             string `json:"end"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	ExcludeWeekends bool   `json:"excludeWeekends"`
	Limit           int    `json:"limit,omitempty"`
}

// SuggestionResponse HTTP модель подсказки
type SuggestionResponse struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// SuggestSlotsResponse HTTP response model
type SuggestSlotsResponse struct {
	SpecialistID int64                `json:"specialistId"`
	Suggestions  []SuggestionResponse `json:"suggestions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SuggestSlotsRequest) ToUseCaseRequest(specialistID int64) (*suggestSlots.Request, error) {
	from, err := handlers.ParseDateTime(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	to, err := handlers.ParseDateTime(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &suggestSlots.Request{
		SpecialistID:    specialistID,
		From:            from,
		To:              to,
		DurationMinutes: r.DurationMinutes,
		ExcludeWeekends: r.ExcludeWeekends,
		Limit:           r.Limit,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *suggestSlots.Response) *SuggestSlotsResponse {
	out := &SuggestSlotsResponse{
		SpecialistID: resp.SpecialistID,
		Suggestions:  make([]SuggestionResponse, 0, len(resp.Suggestions)),
	}
	for _, s := range resp.Suggestions {
		out.Suggestions = append(out.Suggestions, SuggestionResponse{
			Start:  handlers.FormatDateTime(s.Start),
			End:    handlers.FormatDateTime(s.End),
			Score:  math.Round(s.Score*100) / 100,
			Reason: s.Reason,
		})
	}
	return out
}
