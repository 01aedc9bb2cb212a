package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// IngredientService serves the ingredient catalog and resolves submitted
// ingredient lists into interned line items.
type IngredientService interface {
	// ListIngredients retrieves all catalog entries
	ListIngredients() ([]models.Ingredient, error)
	// GetIngredientByID retrieves a catalog entry by its ID
	GetIngredientByID(id uint) (*models.Ingredient, error)
	// CreateIngredient adds a catalog entry (seeding/admin only)
	CreateIngredient(ingredient *models.Ingredient) error
	// ResolveLineItems materializes submitted (catalog id, amount) pairs into
	// RecipeIngredient rows, reusing existing rows for identical pairs. The
	// returned slice preserves submission order. All missing catalog ids are
	// reported in a single NotFoundError.
	ResolveLineItems(tx *gorm.DB, items []models.LineItemInput) ([]models.RecipeIngredient, error)
}

type ingredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Order("id").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredientByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "ingredient", IDs: []uint{id}}
		}
		return nil, err
	}
	return &ingredient, nil
}

func (s *ingredientService) CreateIngredient(ingredient *models.Ingredient) error {
	return s.db.Create(ingredient).Error
}

// MissingIngredientIDs returns the submitted catalog ids that do not exist,
// in submission order.
func MissingIngredientIDs(db *gorm.DB, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := db.Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return missingIDs(ids, found), nil
}

func (s *ingredientService) ResolveLineItems(tx *gorm.DB, items []models.LineItemInput) ([]models.RecipeIngredient, error) {
	if tx == nil {
		tx = s.db
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Amount <= 0 {
			return nil, &models.ValidationError{
				Field:   "amount",
				Message: "must be a positive integer",
			}
		}
		ids = append(ids, item.ID)
	}

	missing, err := MissingIngredientIDs(tx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &models.NotFoundError{Resource: "ingredient", IDs: missing}
	}

	resolved := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		lineItem, err := s.findOrCreateLineItem(tx, item.ID, item.Amount)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *lineItem)
	}
	return resolved, nil
}

// findOrCreateLineItem interns a (catalog id, amount) pair. The unique index
// on the pair makes the create race-safe: a loser refetches the winning row.
func (s *ingredientService) findOrCreateLineItem(tx *gorm.DB, ingredientID uint, amount int) (*models.RecipeIngredient, error) {
	var lineItem models.RecipeIngredient
	err := tx.Where("ingredient_id = ? AND amount = ?", ingredientID, amount).First(&lineItem).Error
	if err == nil {
		return &lineItem, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lineItem = models.RecipeIngredient{IngredientID: ingredientID, Amount: amount}
	if err := tx.Create(&lineItem).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.WithFields(log.Fields{
				"ingredient_id": ingredientID,
				"amount":        amount,
			}).Debug("Line item created concurrently, reusing existing row")
			if err := tx.Where("ingredient_id = ? AND amount = ?", ingredientID, amount).First(&lineItem).Error; err != nil {
				return nil, err
			}
			return &lineItem, nil
		}
		return nil, err
	}
	return &lineItem, nil
}

// missingIDs returns the members of want absent from have, preserving the
// order of want and dropping duplicates.
func missingIDs(want, have []uint) []uint {
	haveSet := make(map[uint]bool, len(have))
	for _, id := range have {
		haveSet[id] = true
	}
	var missing []uint
	seen := make(map[uint]bool, len(want))
	for _, id := range want {
		if !haveSet[id] && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing
}
