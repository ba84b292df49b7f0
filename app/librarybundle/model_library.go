package librarybundle

import (
	"time"

	"rfpcopilot_backend/app/core"
)

const (
	LibraryItemType_Skill     = "skill"
	LibraryItemType_Document  = "document"
	LibraryItemType_Reference = "reference_url"
)

// Category groups library content
// swagger:model
type Category struct {
	core.Model
	Name string `json:"name"`
}

type Categories []Category

func (Category) TableName() string {
	return "library_categories"
}

// Owner is the subject-matter contact for a library entry
// swagger:model
type Owner struct {
	core.Model
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Owners []Owner

func (Owner) TableName() string {
	return "library_owners"
}

// Skill is a reusable text block the answering workflow can draw on
// swagger:model
type Skill struct {
	core.Model
	Title      string   `json:"title" sctable:"title:Title;isDefaultDisplay"`
	Content    string   `json:"content" gorm:"type:TEXT"`
	CategoryId uint     `json:"category_id"`
	OwnerId    uint     `json:"owner_id"`
	Category   Category `json:"category" gorm:"foreignkey:CategoryId"`
	Owner      Owner    `json:"owner" gorm:"foreignkey:OwnerId"`
}

type Skills []Skill

func (Skill) TableName() string {
	return "library_skills"
}

// LibraryDocument is an uploaded source document
// swagger:model
type LibraryDocument struct {
	core.Model
	Title      string   `json:"title" sctable:"title:Title;isDefaultDisplay"`
	FileName   string   `json:"file_name"`
	FilePath   string   `json:"-"`
	CategoryId uint     `json:"category_id"`
	OwnerId    uint     `json:"owner_id"`
	Category   Category `json:"category" gorm:"foreignkey:CategoryId"`
	Owner      Owner    `json:"owner" gorm:"foreignkey:OwnerId"`
}

type LibraryDocuments []LibraryDocument

func (LibraryDocument) TableName() string {
	return "library_documents"
}

// ReferenceUrl points at external source material
// swagger:model
type ReferenceUrl struct {
	core.Model
	Title       string   `json:"title" sctable:"title:Title;isDefaultDisplay"`
	Url         string   `json:"url"`
	Description string   `json:"description" gorm:"type:TEXT"`
	CategoryId  uint     `json:"category_id"`
	OwnerId     uint     `json:"owner_id"`
	Category    Category `json:"category" gorm:"foreignkey:CategoryId"`
	Owner       Owner    `json:"owner" gorm:"foreignkey:OwnerId"`
}

type ReferenceUrls []ReferenceUrl

func (ReferenceUrl) TableName() string {
	return "library_reference_urls"
}

// LibraryItem is the read-only unified view over all three sources.
// swagger:model
type LibraryItem struct {
	ItemType  string    `json:"item_type"`
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Category  Category  `json:"category"`
	Owner     Owner     `json:"owner"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LibraryItems []LibraryItem
