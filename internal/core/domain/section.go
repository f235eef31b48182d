package domain

// SectionKind is one of the business's operating divisions.
type SectionKind string

const (
	SectionFactory  SectionKind = "FACTORY"
	SectionLogistic SectionKind = "LOGISTIC"
	SectionGarden   SectionKind = "GARDEN"
	SectionFridge   SectionKind = "FRIDGE"
	SectionGeneral  SectionKind = "GENERAL"
)

// Section is an operating division with its own pseudo-account for
// inter-section money movement.
type Section struct {
	SectionID string      `json:"sectionID"`
	Name      string      `json:"name"`
	Kind      SectionKind `json:"kind"`
	AccountID string      `json:"accountID"` // section pseudo-account
	AuditFields
}
