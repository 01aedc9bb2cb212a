package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RelationService is the generic toggle for the three (subject, object) edge
// kinds. At most one edge exists per (subject, object, kind): the composite
// unique index is the authoritative guard, the existence pre-check only
// exists to produce a domain error instead of a raw constraint violation.
type RelationService interface {
	// Attach creates the edge; AlreadyExistsError if it is already present
	Attach(subjectID, objectID uint, kind models.RelationKind) error
	// Detach removes the edge; NotFoundError if it is not present
	Detach(subjectID, objectID uint, kind models.RelationKind) error
	// Exists reports whether the edge is present
	Exists(subjectID, objectID uint, kind models.RelationKind) (bool, error)
}

type relationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) RelationService {
	return &relationService{db: db}
}

// edgeSpec binds a relation kind to its table and column names.
type edgeSpec struct {
	name       string
	model      func() interface{}
	subjectCol string
	objectCol  string
}

func specFor(kind models.RelationKind) (edgeSpec, error) {
	switch kind {
	case models.RelationFavorite:
		return edgeSpec{
			name:       "favorite",
			model:      func() interface{} { return &models.Favorite{} },
			subjectCol: "user_id",
			objectCol:  "recipe_id",
		}, nil
	case models.RelationShoppingCart:
		return edgeSpec{
			name:       "shopping cart item",
			model:      func() interface{} { return &models.ShoppingCartItem{} },
			subjectCol: "user_id",
			objectCol:  "recipe_id",
		}, nil
	case models.RelationSubscription:
		return edgeSpec{
			name:       "subscription",
			model:      func() interface{} { return &models.Subscription{} },
			subjectCol: "user_id",
			objectCol:  "author_id",
		}, nil
	default:
		return edgeSpec{}, fmt.Errorf("unknown relation kind: %s", kind)
	}
}

func (s *relationService) Attach(subjectID, objectID uint, kind models.RelationKind) error {
	// Self-reference is checked before anything else: a self-follow edge
	// would satisfy the uniqueness constraint but is nonsensical.
	if kind == models.RelationSubscription && subjectID == objectID {
		return &models.SelfReferenceError{}
	}

	spec, err := specFor(kind)
	if err != nil {
		return err
	}
	if err := s.checkObjectExists(objectID, kind); err != nil {
		return err
	}

	exists, err := s.Exists(subjectID, objectID, kind)
	if err != nil {
		return err
	}
	if exists {
		return &models.AlreadyExistsError{Resource: spec.name}
	}

	edge := s.newEdge(kind, subjectID, objectID)
	if err := s.db.Create(edge).Error; err != nil {
		// A concurrent attach can win the race after the pre-check; the
		// loser surfaces the same domain error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.AlreadyExistsError{Resource: spec.name}
		}
		return err
	}

	log.WithFields(log.Fields{
		"kind":    kind,
		"subject": subjectID,
		"object":  objectID,
	}).Debug("Relation attached")
	return nil
}

func (s *relationService) Detach(subjectID, objectID uint, kind models.RelationKind) error {
	spec, err := specFor(kind)
	if err != nil {
		return err
	}

	result := s.db.
		Where(spec.subjectCol+" = ? AND "+spec.objectCol+" = ?", subjectID, objectID).
		Delete(spec.model())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: spec.name}
	}

	log.WithFields(log.Fields{
		"kind":    kind,
		"subject": subjectID,
		"object":  objectID,
	}).Debug("Relation detached")
	return nil
}

func (s *relationService) Exists(subjectID, objectID uint, kind models.RelationKind) (bool, error) {
	spec, err := specFor(kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = s.db.Model(spec.model()).
		Where(spec.subjectCol+" = ? AND "+spec.objectCol+" = ?", subjectID, objectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *relationService) newEdge(kind models.RelationKind, subjectID, objectID uint) interface{} {
	switch kind {
	case models.RelationFavorite:
		return &models.Favorite{UserID: subjectID, RecipeID: objectID}
	case models.RelationShoppingCart:
		return &models.ShoppingCartItem{UserID: subjectID, RecipeID: objectID}
	default:
		return &models.Subscription{UserID: subjectID, AuthorID: objectID}
	}
}

// checkObjectExists verifies the edge target: a recipe for favorite/cart
// edges, a user for subscriptions.
func (s *relationService) checkObjectExists(objectID uint, kind models.RelationKind) error {
	var (
		count    int64
		err      error
		resource string
	)
	if kind == models.RelationSubscription {
		resource = "user"
		err = s.db.Model(&models.User{}).Where("id = ?", objectID).Count(&count).Error
	} else {
		resource = "recipe"
		err = s.db.Model(&models.Recipe{}).Where("id = ?", objectID).Count(&count).Error
	}
	if err != nil {
		return err
	}
	if count == 0 {
		return &models.NotFoundError{Resource: resource, IDs: []uint{objectID}}
	}
	return nil
}
