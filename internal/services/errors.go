package services

import (
	"github.com/poohbae/CakeHistory/internal/domain"
)

// storageError wraps a repository failure, including context deadlines, as a StorageError.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsStorage(err) {
		return err
	}
	return domain.NewStorageError(op, err)
}
