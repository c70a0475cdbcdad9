package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Movie struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	NameNormalized string    `json:"-" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description    string    `json:"description" gorm:"type:varchar(2000);not null"`
	Genre          *string   `json:"genre,omitempty" gorm:"type:varchar(255);index"`
	Rating         *int      `json:"rating,omitempty"`
	ImageURL       *string   `json:"imageUrl,omitempty" gorm:"type:varchar(1024)"`
	CreatedAt      time.Time `json:"createdAt" gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// NormalizeName is the comparison key behind the case-insensitive
// name-uniqueness rule. The unique index sits on the normalized column.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Movie) BeforeSave(tx *gorm.DB) error {
	m.NameNormalized = NormalizeName(m.Name)
	return nil
}
