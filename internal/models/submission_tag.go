package models

type SubmissionTag struct {
	SubmissionID uint `gorm:"primaryKey;autoIncrement:false" json:"submission_id"`
	TagID        uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`

	Tag *Tag `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (SubmissionTag) TableName() string {
	return "submission_tags"
}
