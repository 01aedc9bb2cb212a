package models

import (
	"time"
)

// Recipe owns its tag associations and ingredient line items. The
// (author_id, name) pair is unique: one author cannot publish two recipes
// under the same name.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;uniqueIndex:idx_recipes_author_name" json:"-"`
	Name        string    `gorm:"size:256;not null;uniqueIndex:idx_recipes_author_name" json:"name"`
	Image       string    `json:"image"`
	Text        string    `json:"text"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag     `gorm:"many2many:recipe_tags" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeLineItem joins a recipe to its interned line items. Position is the
// zero-based submission index; reads order by it so the ingredient sequence
// survives round trips.
type RecipeLineItem struct {
	RecipeID           uint `gorm:"primaryKey"`
	RecipeIngredientID uint `gorm:"primaryKey"`
	Position           int  `gorm:"not null"`
}

func (RecipeLineItem) TableName() string {
	return "recipe_line_items"
}

// RecipePayload is the write shape for recipe create and update. Tags and
// ingredients are full replacement sets; partial patches are not supported.
type RecipePayload struct {
	Name        string          `json:"name" binding:"required,max=256"`
	Image       string          `json:"image"`
	Text        string          `json:"text"`
	CookingTime int             `json:"cooking_time" binding:"required"`
	Tags        []uint          `json:"tags" binding:"required"`
	Ingredients []LineItemInput `json:"ingredients" binding:"required"`
}
