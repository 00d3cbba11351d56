package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"CloudVault/internal/model"
)

// ErrObjectNotFound возвращается, когда объекта с таким id нет.
var ErrObjectNotFound = errors.New("stored object not found")

// ObjectRepository определяет контракт доступа к StoredObject для слоя сервиса.
type ObjectRepository interface {
	// CreateIfAbsent пытается создать запись. Если объект с таким хешем
	// уже существует — ничего не делает и возвращает created=false.
	CreateIfAbsent(ctx context.Context, obj *model.StoredObject) (created bool, err error)

	// GetByID возвращает объект вместе с содержимым.
	GetByID(ctx context.Context, id string) (*model.StoredObject, error)

	// FindByHash возвращает объект по хешу содержимого, без поля Data.
	FindByHash(ctx context.Context, hash string) (*model.StoredObject, error)

	// List возвращает все объекты без содержимого, новые первыми.
	List(ctx context.Context) ([]model.StoredObject, error)

	// Delete удаляет объект по id.
	Delete(ctx context.Context, id string) error
}

type objectRepo struct {
	db *gorm.DB
}

// NewObjectRepository создаёт реализацию репозитория для StoredObject.
func NewObjectRepository(db *gorm.DB) ObjectRepository {
	return &objectRepo{db: db}
}

func (r *objectRepo) CreateIfAbsent(ctx context.Context, obj *model.StoredObject) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}},
		DoNothing: true,
	}).Create(obj)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *objectRepo) GetByID(ctx context.Context, id string) (*model.StoredObject, error) {
	var obj model.StoredObject
	err := r.db.WithContext(ctx).First(&obj, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *objectRepo) FindByHash(ctx context.Context, hash string) (*model.StoredObject, error) {
	var obj model.StoredObject
	err := r.db.WithContext(ctx).
		Omit("data").
		First(&obj, "content_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *objectRepo) List(ctx context.Context) ([]model.StoredObject, error) {
	var list []model.StoredObject
	err := r.db.WithContext(ctx).
		Omit("data").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *objectRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&model.StoredObject{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrObjectNotFound
	}
	return nil
}
