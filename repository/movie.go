package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tnqbao/movie-catalog-service/entity"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// orderClause maps the public sort keys onto total orders. Anything
// unrecognized falls back to newest-first.
func orderClause(sort string) string {
	switch strings.ToLower(sort) {
	case "name_asc":
		return "name ASC"
	case "name_desc":
		return "name DESC"
	case "rating_asc":
		return "rating ASC"
	case "rating_desc":
		return "rating DESC"
	default:
		return "created_at DESC"
	}
}

// escapeLike neutralizes LIKE wildcards so the search term always matches as
// a literal substring.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, "%", `\%`)
	term = strings.ReplaceAll(term, "_", `\_`)
	return term
}

func (r *MovieRepository) List(ctx context.Context, search, genre, sort string) ([]entity.Movie, error) {
	query := r.db.WithContext(ctx).Model(&entity.Movie{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}
	if genre != "" {
		query = query.Where("genre = ?", genre)
	}

	var movies []entity.Movie
	if err := query.Order(orderClause(sort)).Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// FindByID returns (nil, nil) when no record matches; absence is a normal
// outcome for the callers, not a failure.
func (r *MovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	var movie entity.Movie
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// CountByName counts records whose name collides with the given one under
// case-insensitive trimmed comparison. excludeID is skipped when non-nil so
// an update doesn't conflict with its own record.
func (r *MovieRepository) CountByName(ctx context.Context, name string, excludeID uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Movie{}).
		Where("name_normalized = ?", entity.NormalizeName(name))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	err := r.db.WithContext(ctx).Create(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

// Save persists the full record, overwriting every column.
func (r *MovieRepository) Save(ctx context.Context, movie *entity.Movie) error {
	err := r.db.WithContext(ctx).Save(movie).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateName
	}
	return err
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Movie{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
