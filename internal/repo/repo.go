package repo

import "gorm.io/gorm"

// GormRepo is the single persistence gateway. Queries are context-threaded;
// gorm errors (ErrRecordNotFound included) bubble up untranslated, the
// service layer maps them to outcomes.
type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
