package models

// Tag is reference data attached to recipes. Tags are created out of band
// (seeding or admin endpoints), never through recipe submission.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:256;not null" json:"name"`
	Color string `gorm:"size:10" json:"color"`
	Slug  string `gorm:"uniqueIndex;not null;size:64" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}
