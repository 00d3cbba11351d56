package model

import "time"

// StoredObject — серверная модель загруженного файла: метаданные плюс
// бинарное содержимое, адресуемое хешем.
type StoredObject struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Name        string `gorm:"not null"`
	ContentHash string `gorm:"not null;uniqueIndex"`
	SizeBytes   int64  `gorm:"not null"`
	MimeType    string

	Data []byte `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
