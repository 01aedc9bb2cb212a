package services

import (
	"fmt"
	"strings"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"gorm.io/gorm"
)

// ShoppingListService folds every recipe in a user's cart into one
// deduplicated, unit-aware ingredient list.
type ShoppingListService interface {
	// Build renders the consolidated list, one "<name> (<unit>): <amount>"
	// line per distinct ingredient. An empty cart yields an empty string.
	Build(userID uint) (string, error)
}

type shoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) ShoppingListService {
	return &shoppingListService{db: db}
}

// Build is a pure fold over current storage state: cart edges in insertion
// order, each recipe's line items in position order, amounts summed per
// "name (unit)" key. Output lines follow the first-insertion order of each
// key, not sort order.
func (s *shoppingListService) Build(userID uint) (string, error) {
	var cartItems []models.ShoppingCartItem
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&cartItems).Error; err != nil {
		return "", err
	}

	totals := make(map[string]int)
	var keys []string

	for _, cartItem := range cartItems {
		lineItems, err := LoadLineItemViews(s.db, cartItem.RecipeID)
		if err != nil {
			return "", err
		}
		for _, lineItem := range lineItems {
			key := fmt.Sprintf("%s (%s)", lineItem.Name, lineItem.MeasurementUnit)
			if _, ok := totals[key]; !ok {
				keys = append(keys, key)
			}
			totals[key] += lineItem.Amount
		}
	}

	var report strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&report, "%s: %d\n", key, totals[key])
	}
	return report.String(), nil
}
