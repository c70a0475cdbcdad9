package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tnqbao/movie-catalog-service/entity"
	"github.com/tnqbao/movie-catalog-service/infra"
	"github.com/tnqbao/movie-catalog-service/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const maxDescriptionLength = 2000

// MovieStore is the slice of the repository the catalog service needs.
type MovieStore interface {
	List(ctx context.Context, search, genre, sort string) ([]entity.Movie, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	CountByName(ctx context.Context, name string, excludeID uuid.UUID) (int64, error)
	Create(ctx context.Context, movie *entity.Movie) error
	Save(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BlobStore is the image-side contract: upload returns a public reference,
// delete reports success and is idempotent for absent objects.
type BlobStore interface {
	UploadFile(ctx context.Context, reader io.Reader, size int64, filename, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) bool
}

// MovieInput carries the writable fields of a movie. Image is nil when the
// caller supplied no image source.
type MovieInput struct {
	Name        string
	Description string
	Genre       *string
	Rating      *int
	Image       ImageSource
}

// MovieService orchestrates validation, duplicate-name checking, query
// shaping and the image lifecycle. All state lives in the two stores; the
// service itself holds only immutable clients and is safe for concurrent use.
type MovieService struct {
	store  MovieStore
	blobs  BlobStore
	logger *infra.LoggerClient

	imageDeleteFailures metric.Int64Counter
}

func NewMovieService(store MovieStore, blobs BlobStore, logger *infra.LoggerClient) *MovieService {
	meter := otel.Meter("github.com/tnqbao/movie-catalog-service/provider")
	counter, err := meter.Int64Counter("catalog_image_delete_failures_total",
		metric.WithDescription("Image blobs that could not be deleted and may need manual cleanup"),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create image delete failure counter: %v", err))
	}

	return &MovieService{
		store:               store,
		blobs:               blobs,
		logger:              logger,
		imageDeleteFailures: counter,
	}
}

// List returns every record matching the conjunctive filter: case-insensitive
// substring on name, exact genre equality. Unrecognized or empty sort keys
// fall back to creation time descending. No pagination.
func (s *MovieService) List(ctx context.Context, search, genre, sort string) ([]entity.Movie, error) {
	movies, err := s.store.List(ctx, strings.TrimSpace(search), strings.TrimSpace(genre), sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// GetByID returns (nil, nil) when no record matches.
func (s *MovieService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// Create validates the input, rejects duplicate names, uploads the image
// before the record is inserted (so a failed upload writes nothing) and
// returns the stored record.
func (s *MovieService) Create(ctx context.Context, input MovieInput) (*entity.Movie, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.checkDuplicateName(ctx, input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	var imageURL *string
	switch src := input.Image.(type) {
	case UploadedFile:
		uploaded, err := s.blobs.UploadFile(ctx, src.Reader, src.Size, src.Filename, src.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = &uploaded
	case ExternalURL:
		url := string(src)
		imageURL = &url
	}

	now := time.Now().UTC()
	movie := &entity.Movie{
		Name:        input.Name,
		Description: input.Description,
		Genre:       input.Genre,
		Rating:      input.Rating,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	return movie, nil
}

// Update replaces the whole record. Absence is a normal (nil, nil) outcome.
// Image lifecycle: a new file deletes the old blob best-effort and uploads the
// replacement (upload failure aborts, the record stays untouched); a new
// differing URL deletes the old blob best-effort and is stored verbatim;
// otherwise the reference is carried over unchanged.
func (s *MovieService) Update(ctx context.Context, id uuid.UUID, input MovieInput) (*entity.Movie, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	if err := s.checkDuplicateName(ctx, input.Name, id); err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	switch src := input.Image.(type) {
	case UploadedFile:
		s.deleteBlob(ctx, existing.ImageURL)
		uploaded, err := s.blobs.UploadFile(ctx, src.Reader, src.Size, src.Filename, src.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		imageURL = &uploaded
	case ExternalURL:
		url := string(src)
		if existing.ImageURL == nil || *existing.ImageURL != url {
			s.deleteBlob(ctx, existing.ImageURL)
			imageURL = &url
		}
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Genre = input.Genre
	existing.Rating = input.Rating
	existing.ImageURL = imageURL
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.Save(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	return existing, nil
}

// Delete removes the record and, when an image reference exists, attempts the
// blob deletion best-effort first. A missing record returns (false, nil) with
// no blob calls.
func (s *MovieService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get movie: %w", err)
	}
	if existing == nil {
		return false, nil
	}

	s.deleteBlob(ctx, existing.ImageURL)

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete movie: %w", err)
	}
	return deleted, nil
}

func (s *MovieService) checkDuplicateName(ctx context.Context, name string, excludeID uuid.UUID) error {
	count, err := s.store.CountByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate name: %w", err)
	}
	if count > 0 {
		return repository.ErrDuplicateName
	}
	return nil
}

// deleteBlob swallows deletion failures: record consistency wins over blob
// cleanup. Failures are logged and counted so orphaned blobs can be
// reconciled out-of-band.
func (s *MovieService) deleteBlob(ctx context.Context, fileURL *string) {
	if fileURL == nil || *fileURL == "" {
		return
	}
	if ok := s.blobs.DeleteFile(ctx, *fileURL); !ok {
		s.logger.WarningWithContextf(ctx, "[Movie] Failed to delete image blob %s, continuing", *fileURL)
		s.imageDeleteFailures.Add(ctx, 1)
	}
}

func validateInput(input MovieInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(input.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description cannot be longer than %d characters", ErrValidation, maxDescriptionLength)
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}
