package services

import (
	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"gorm.io/gorm"
)

// SubscriptionService serves the read side of subscriptions: the authors a
// user follows, each with a slice of their recipes. The toggle itself lives
// in RelationService.
type SubscriptionService interface {
	// ListSubscriptions returns the followed authors in subscription order.
	// recipesLimit caps the embedded recipe list per author; 0 means all.
	ListSubscriptions(userID uint, recipesLimit int) ([]models.SubscriptionView, error)
}

type subscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) SubscriptionService {
	return &subscriptionService{db: db}
}

func (s *subscriptionService) ListSubscriptions(userID uint, recipesLimit int) ([]models.SubscriptionView, error) {
	var subscriptions []models.Subscription
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&subscriptions).Error; err != nil {
		return nil, err
	}

	views := make([]models.SubscriptionView, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		var author models.User
		if err := s.db.First(&author, subscription.AuthorID).Error; err != nil {
			return nil, err
		}

		query := s.db.Where("author_id = ?", author.ID).Order("id")
		if recipesLimit > 0 {
			query = query.Limit(recipesLimit)
		}
		var recipes []models.Recipe
		if err := query.Find(&recipes).Error; err != nil {
			return nil, err
		}

		var count int64
		if err := s.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
			return nil, err
		}

		summaries := make([]models.RecipeSummary, len(recipes))
		for i, recipe := range recipes {
			summaries[i] = models.RecipeSummary{
				ID:          recipe.ID,
				Name:        recipe.Name,
				Image:       recipe.Image,
				CookingTime: recipe.CookingTime,
			}
		}

		views = append(views, models.SubscriptionView{
			UserView: models.UserView{
				ID:           author.ID,
				Email:        author.Email,
				Username:     author.Username,
				FirstName:    author.FirstName,
				LastName:     author.LastName,
				IsSubscribed: true,
			},
			Recipes:      summaries,
			RecipesCount: count,
		})
	}
	return views, nil
}
