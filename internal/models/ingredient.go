package models

// Ingredient is a catalog entry: a canonical ingredient name paired with its
// measurement unit ("flour" / "g"). Rows are immutable once referenced by a
// line item.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"size:79;not null" json:"name"`
	MeasurementUnit string `gorm:"size:30;not null" json:"measurement_unit"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// RecipeIngredient is one line item: a catalog ingredient with an amount.
// The (ingredient_id, amount) pair carries a unique index so identical
// submissions from different recipes intern to the same row; rows are only
// ever created through find-or-create and never mutated afterwards.
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_ingredient_amount" json:"ingredient_id"`
	Amount       int        `gorm:"not null;uniqueIndex:idx_ingredient_amount" json:"amount"`
	Ingredient   Ingredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// LineItemInput is one entry of a submitted ingredient list.
type LineItemInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}
