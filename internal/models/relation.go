package models

import (
	"time"
)

// RelationKind selects which edge table a toggle operates on.
type RelationKind string

const (
	RelationFavorite     RelationKind = "favorite"
	RelationShoppingCart RelationKind = "shopping_cart"
	RelationSubscription RelationKind = "subscription"
)

// Favorite marks a recipe as a favorite of a user. The composite unique
// index is the authoritative at-most-one-edge guard.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCartItem puts a recipe into a user's shopping cart. Autoincrement
// ids double as insertion order for the shopping list fold.
type ShoppingCartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"-"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}

// Subscription follows an author. UserID is the subscriber. The store does
// not prevent user == author; the relation service rejects that explicitly.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_subscriptions_user_author" json:"user_id"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_subscriptions_user_author" json:"author_id"`
	CreatedAt time.Time `json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
