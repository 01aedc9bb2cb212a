package models

// Read-side shapes. The boolean fields are derived per request against the
// viewing user, never stored: an anonymous viewer sees false everywhere even
// when the author favorited their own recipe.

// UserView is a user as seen by a viewer.
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// LineItemView flattens a line item with its catalog entry.
type LineItemView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is a fully resolved recipe: tags order-insensitive, ingredients
// in submission order.
type RecipeView struct {
	ID               uint           `json:"id"`
	Tags             []Tag          `json:"tags"`
	Author           UserView       `json:"author"`
	Ingredients      []LineItemView `json:"ingredients"`
	IsFavorited      bool           `json:"is_favorited"`
	IsInShoppingCart bool           `json:"is_in_shopping_cart"`
	Name             string         `json:"name"`
	Image            string         `json:"image"`
	Text             string         `json:"text"`
	CookingTime      int            `json:"cooking_time"`
}

// RecipeSummary is the short recipe shape embedded in subscription listings.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is one followed author with their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}
