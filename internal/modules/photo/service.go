package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoshare/internal/domain"
	"photoshare/internal/pkg/qr"
	"photoshare/internal/storage"
)

const maxTagsPerPhoto = 5

type Service struct {
	repo  Repository
	store storage.Store
}

func NewService(repo Repository, store storage.Store) *Service {
	return &Service{repo: repo, store: store}
}

type UploadInput struct {
	File        io.Reader
	Size        int64
	ContentType string
	Filename    string
	Description string
	Tags        []string
}

// Upload stores the blob first and only then creates the row, so a failed
// write never leaves a photo pointing at nothing.
func (s *Service) Upload(ctx context.Context, ownerID int64, in UploadInput) (*domain.Photo, error) {
	if in.File == nil {
		return nil, ErrEmptyUpload
	}

	tags, err := s.resolveTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	key := uuid.NewString() + strings.ToLower(filepath.Ext(in.Filename))
	url, err := s.store.Save(ctx, key, in.ContentType, in.File, in.Size)
	if err != nil {
		return nil, err
	}

	photo := &domain.Photo{
		URL:         url,
		StorageKey:  key,
		Description: in.Description,
		OwnerID:     ownerID,
		Tags:        tags,
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("photo orphan_blob_cleanup_failed key=%s err=%v", key, delErr)
		}
		return nil, err
	}
	return photo, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}

func (s *Service) List(ctx context.Context, tag string, offset, limit int) ([]domain.Photo, error) {
	if tag != "" {
		return s.repo.ListByTag(ctx, normalizeTag(tag), offset, limit)
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *Service) UpdateDescription(ctx context.Context, id int64, description string) (*domain.Photo, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDescription(ctx, id, description); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the row and then the blob. Blob removal is best-effort;
// a dangling object is preferable to a photo the API still serves.
func (s *Service) Delete(ctx context.Context, id int64) error {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if photo.StorageKey != "" {
		if err := s.store.Delete(ctx, photo.StorageKey); err != nil {
			log.Printf("photo blob_delete_failed key=%s err=%v", photo.StorageKey, err)
		}
	}
	return nil
}

func (s *Service) SetTags(ctx context.Context, id int64, names []string) (*domain.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceTags(ctx, photo, tags); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// QRCode renders a PNG that encodes the photo's public URL.
func (s *Service) QRCode(ctx context.Context, id int64) ([]byte, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return qr.EncodePNG(photo.URL)
}

func (s *Service) Resize(ctx context.Context, id, width, height int64) (*domain.TransformedImage, error) {
	return s.transform(ctx, id, storage.Transform{Width: int(width), Height: int(height)})
}

func (s *Service) Filter(ctx context.Context, id int64, filter string) (*domain.TransformedImage, error) {
	return s.transform(ctx, id, storage.Transform{Filter: filter})
}

// transform derives the rendition URL, stores a QR code pointing at it, and
// records both. The provider does the actual pixel work when the URL is hit.
func (s *Service) transform(ctx context.Context, id int64, t storage.Transform) (*domain.TransformedImage, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	transformedURL := s.store.TransformURL(photo.URL, t)

	qrURL := ""
	if png, err := qr.EncodePNG(transformedURL); err == nil {
		key := fmt.Sprintf("qr/%s.png", uuid.NewString())
		if url, err := s.store.Save(ctx, key, "image/png", strings.NewReader(string(png)), int64(len(png))); err == nil {
			qrURL = url
		} else {
			log.Printf("photo qr_store_failed photo_id=%d err=%v", id, err)
		}
	}

	rendition := &domain.TransformedImage{
		OriginalPhotoID: photo.ID,
		TransformedURL:  transformedURL,
		QRCodeURL:       qrURL,
	}
	if err := s.repo.CreateTransformed(ctx, rendition); err != nil {
		return nil, err
	}
	return rendition, nil
}

// OwnerOf is the ownership lookup used by the route gates.
func (s *Service) OwnerOf(ctx context.Context, id int64) (int64, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return photo.OwnerID, nil
}

func (s *Service) resolveTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	seen := make(map[string]bool, len(names))
	tags := make([]domain.Tag, 0, len(names))
	for _, raw := range names {
		name := normalizeTag(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if len(tags) == maxTagsPerPhoto {
			return nil, ErrTooManyTags
		}
		tag, err := s.repo.FindOrCreateTag(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func normalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
