package models

import "time"

// Submission é um lead vindo do formulário público.
type Submission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:150;not null" json:"name"`
	Phone       string  `gorm:"size:30;not null" json:"phone"`
	VehicleType string  `gorm:"size:100;not null" json:"vehicle_type"`
	BudgetFrom  float64 `gorm:"not null" json:"budget_from"`
	BudgetTo    float64 `gorm:"not null" json:"budget_to"`
	Ref         *string `gorm:"size:100;index" json:"ref"`

	StatusID *uint   `gorm:"index" json:"status_id"`
	Status   *Status `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"status,omitempty"`

	AssignedUserID *string  `gorm:"type:uuid;index" json:"assigned_user_id"`
	AssignedUser   *Profile `gorm:"foreignKey:AssignedUserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"assigned_user,omitempty"`

	SubmissionTags []SubmissionTag `gorm:"constraint:OnDelete:CASCADE;" json:"submission_tags"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TagIDs devolve os ids das tags carregadas via Preload("SubmissionTags").
func (s *Submission) TagIDs() []uint {
	ids := make([]uint, 0, len(s.SubmissionTags))
	for _, st := range s.SubmissionTags {
		ids = append(ids, st.TagID)
	}
	return ids
}
