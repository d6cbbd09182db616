package repo

import (
	"pocket-pic-server/internal/model"

	"gorm.io/gorm"
)

type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	IsUsernameTaken(username string) (bool, error)
	CountAll() (int64, error)
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}
