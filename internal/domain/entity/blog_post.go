package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt   string    `gorm:"type:text;not null" json:"excerpt"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `gorm:"type:text" json:"image,omitempty"`
	Author    string    `gorm:"type:varchar(255)" json:"author,omitempty"`
	Category  string    `gorm:"type:varchar(100);index" json:"category,omitempty"`
	Featured  bool      `gorm:"not null;default:false" json:"featured"`
	ReadTime  string    `gorm:"type:varchar(50)" json:"read_time,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

type BlogPostFilter struct {
	Category string
	Featured *bool
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases title and joins its alphanumeric runs with hyphens.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
