package services

import (
	"errors"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"gorm.io/gorm"
)

type TagService interface {
	// ListTags retrieves all tags
	ListTags() ([]models.Tag, error)
	// GetTagByID retrieves a tag by its ID
	GetTagByID(id uint) (*models.Tag, error)
	// CreateTag creates a new tag; the slug must be unique
	CreateTag(tag *models.Tag) error
}

type tagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) TagService {
	return &tagService{db: db}
}

func (s *tagService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagService) GetTagByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "tag", IDs: []uint{id}}
		}
		return nil, err
	}
	return &tag, nil
}

func (s *tagService) CreateTag(tag *models.Tag) error {
	if err := s.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &models.AlreadyExistsError{Resource: "tag", Detail: "slug is taken"}
		}
		return err
	}
	return nil
}
