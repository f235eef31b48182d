package dto

import (
	"github.com/farruhbek/business_accounting_app/internal/core/domain"
)

// CreateSectionRequest registers an operating division together with its
// pseudo-account.
type CreateSectionRequest struct {
	Name         string `json:"name" binding:"required"`
	Kind         string `json:"kind" binding:"required,oneof=FACTORY LOGISTIC GARDEN FRIDGE GENERAL"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// SectionResponse is the API representation of a section.
type SectionResponse struct {
	SectionID string `json:"sectionID"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	AccountID string `json:"accountID"`
}

// ToSectionResponse converts a domain.Section.
func ToSectionResponse(s *domain.Section) SectionResponse {
	return SectionResponse{
		SectionID: s.SectionID,
		Name:      s.Name,
		Kind:      string(s.Kind),
		AccountID: s.AccountID,
	}
}

// ToSectionResponses converts a slice of sections.
func ToSectionResponses(sections []domain.Section) []SectionResponse {
	responses := make([]SectionResponse, len(sections))
	for i := range sections {
		responses[i] = ToSectionResponse(&sections[i])
	}
	return responses
}
