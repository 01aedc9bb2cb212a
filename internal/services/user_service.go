package services

import (
	"errors"
	"regexp"

	"github.com/franciscosanchezn/gin-recipes-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// usernameRe is the allowed username character set: letters, digits and
// @/./+/-/_ only.
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type UserService interface {
	// Register creates a new user with a hashed password
	Register(req *models.RegisterRequest) (*models.User, error)
	// GetUserByID retrieves a user by its ID
	GetUserByID(id uint) (*models.User, error)
	// GetUserByEmail retrieves a user by email
	GetUserByEmail(email string) (*models.User, error)
	// ListUsers retrieves all users
	ListUsers() ([]models.User, error)
	// CheckPassword verifies email/password credentials and returns the user
	CheckPassword(email, password string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) Register(req *models.RegisterRequest) (*models.User, error) {
	if !usernameRe.MatchString(req.Username) {
		return nil, &models.ValidationError{
			Field:   "username",
			Message: "may contain only letters, digits and @/./+/-/_ characters",
		}
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, &models.AlreadyExistsError{Resource: "user", Detail: "email is taken"}
	}
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, &models.AlreadyExistsError{Resource: "user", Detail: "username is taken"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := s.db.Create(user).Error; err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index is authoritative.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &models.AlreadyExistsError{Resource: "user"}
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "user"}
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) CheckPassword(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &models.AuthorizationError{Message: "invalid credentials"}
	}
	return user, nil
}
