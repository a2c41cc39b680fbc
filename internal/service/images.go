package service

import (
	"errors"

	"github.com/d60-Lab/yatube/pkg/storage"
)

func imageError(err error) error {
	if errors.Is(err, storage.ErrInvalidImage) || errors.Is(err, storage.ErrImageTooLarge) {
		ve := &ValidationError{}
		ve.Add("image", err.Error())
		return ve
	}
	return err
}
