package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"CloudVault/internal/model"
	"CloudVault/internal/repo"
)

// ObjectService реализует серверную логику хранилища: приём файла с
// дедупликацией по хешу, выдачу содержимого, список и удаление.
type ObjectService struct {
	repo repo.ObjectRepository
}

func NewObjectService(r repo.ObjectRepository) *ObjectService {
	return &ObjectService{repo: r}
}

// Store сохраняет файл. Повторная загрузка того же содержимого идемпотентна:
// возвращается уже существующий объект и created=false.
func (s *ObjectService) Store(ctx context.Context, name, hash, mimeType string, data []byte) (*model.StoredObject, bool, error) {
	if name == "" || hash == "" {
		return nil, false, fmt.Errorf("name and hash are required")
	}
	obj := &model.StoredObject{
		ID:          uuid.NewString(),
		Name:        name,
		ContentHash: hash,
		SizeBytes:   int64(len(data)),
		MimeType:    mimeType,
		Data:        data,
	}
	created, err := s.repo.CreateIfAbsent(ctx, obj)
	if err != nil {
		return nil, false, fmt.Errorf("store object: %w", err)
	}
	if created {
		return obj, true, nil
	}
	existing, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, false, fmt.Errorf("lookup existing object: %w", err)
	}
	return existing, false, nil
}

// Get возвращает объект вместе с содержимым.
func (s *ObjectService) Get(ctx context.Context, id string) (*model.StoredObject, error) {
	return s.repo.GetByID(ctx, id)
}

// List возвращает метаданные всех объектов.
func (s *ObjectService) List(ctx context.Context) ([]model.StoredObject, error) {
	return s.repo.List(ctx)
}

// Delete удаляет объект по id.
func (s *ObjectService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// IsNotFound сообщает, относится ли ошибка к отсутствующему объекту.
func IsNotFound(err error) bool {
	return errors.Is(err, repo.ErrObjectNotFound)
}
