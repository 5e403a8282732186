package models

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Roles stored on accounts
const (
	RoleCoach  = "Coach"
	RoleSkater = "Skater"
)

// Account is a login. It points at exactly one coach or skater record.
type Account struct {
	BaseModel
	Name         string    `gorm:"not null;uniqueIndex:idx_account_name"`
	Surname      string    `gorm:"not null;uniqueIndex:idx_account_name"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	CoachID      *string   `gorm:"type:varchar(26)"`
	SkaterID     *string   `gorm:"type:varchar(26)"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Coach is a coach's public record
type Coach struct {
	BaseModel
	Name    string `gorm:"not null"`
	Surname string `gorm:"not null"`
}

// Category is a competition category such as Junior
type Category struct {
	BaseModel
	Name string `gorm:"not null;unique"`
}

// Skater belongs to one coach and one category
type Skater struct {
	BaseModel
	Name       string `gorm:"not null"`
	Surname    string `gorm:"not null"`
	CategoryID string `gorm:"not null;index"`
	CoachID    string `gorm:"not null;index"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

// Program is one of a skater's competition programs
type Program struct {
	BaseModel
	SkaterID    string `gorm:"not null;index"`
	Year        int    `gorm:"not null"`
	Type        string `gorm:"not null"`
	Description string
}

// Comment is a coach's note on a program
type Comment struct {
	BaseModel
	ProgramID string `gorm:"not null;index"`
	CoachID   string `gorm:"not null"`
	Comment   string `gorm:"not null"`

	Coach Coach `gorm:"foreignKey:CoachID"`
}

// Training is one logged session. Elements holds element IDs as CSV.
type Training struct {
	BaseModel
	SkaterID string    `gorm:"not null;index"`
	Date     time.Time `gorm:"not null"`
	Duration int       `gorm:"not null"`
	Type     string    `gorm:"not null"`
	Elements string
	Notes    string
}

// Element is a trainable element for OnIce or OffIce sessions
type Element struct {
	BaseModel
	Name string `gorm:"not null"`
	Type string `gorm:"not null;index"`
}

// Material is an educational material with attached files
type Material struct {
	BaseModel
	CoachID     string `gorm:"not null"`
	Title       string `gorm:"not null"`
	Description string

	Files []StoredFile `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

// File kinds
const (
	FileKindMusic       = "music"
	FileKindEducational = "educational"
)

// StoredFile is an uploaded file kept in the database
type StoredFile struct {
	BaseModel
	Kind        string  `gorm:"not null"`
	ProgramID   *string `gorm:"type:varchar(26);index"`
	MaterialID  *string `gorm:"type:varchar(26);index"`
	FileName    string  `gorm:"not null"`
	ContentType string  `gorm:"not null"`
	FileSize    int64   `gorm:"not null"`
	Data        []byte  `gorm:"not null"`
}

// URL is where the file is served, relative to the API root
func (f *StoredFile) URL() string {
	return "/files/" + f.ID
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	// Collect all models
	models := []interface{}{
		&Account{}, &Coach{}, &Category{}, &Skater{}, &Program{}, &Comment{},
		&Training{}, &Element{}, &Material{}, &StoredFile{},
	}

	return db.AutoMigrate(models...)
}

// DefaultCategories are created on first start
var DefaultCategories = []string{"Basic Novice", "Advanced Novice", "Junior", "Senior"}

// DefaultElements are created on first start. IDs are fixed so training
// element CSVs stay readable.
var DefaultElements = []Element{
	{BaseModel: BaseModel{ID: "1"}, Name: "Single Axel", Type: "OnIce"},
	{BaseModel: BaseModel{ID: "2"}, Name: "Double Lutz", Type: "OnIce"},
	{BaseModel: BaseModel{ID: "3"}, Name: "Triple Salchow", Type: "OnIce"},
	{BaseModel: BaseModel{ID: "4"}, Name: "Camel Spin", Type: "OnIce"},
	{BaseModel: BaseModel{ID: "5"}, Name: "Step Sequence", Type: "OnIce"},
	{BaseModel: BaseModel{ID: "101"}, Name: "Jump Rotations", Type: "OffIce"},
	{BaseModel: BaseModel{ID: "102"}, Name: "Stretching", Type: "OffIce"},
	{BaseModel: BaseModel{ID: "103"}, Name: "Strength", Type: "OffIce"},
	{BaseModel: BaseModel{ID: "104"}, Name: "Cardio", Type: "OffIce"},
}

// Seed inserts the default categories and elements. Existing rows are left
// alone, so it is safe to call on every start.
func Seed(db *gorm.DB) error {
	for _, name := range DefaultCategories {
		if err := db.Where(Category{Name: name}).FirstOrCreate(&Category{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	elements := make([]Element, len(DefaultElements))
	copy(elements, DefaultElements)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&elements).Error; err != nil {
		return fmt.Errorf("failed to seed elements: %w", err)
	}
	return nil
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}

// FindByIDWithPreload finds a record by ID with preloading
func FindByIDWithPreload[T any](db *gorm.DB, id string, model *T, preloads ...string) error {
	query := db
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	return query.Where("id = ?", id).First(model).Error
}
