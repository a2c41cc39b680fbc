package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var (
	ErrInvalidImage  = errors.New("upload a valid image: the file is either not an image or a corrupted image")
	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
)

// ImageStore 校验并保存上传的图片
type ImageStore struct {
	store   Storage
	maxSize int64
}

func NewImageStore(store Storage, maxSize int64) *ImageStore {
	return &ImageStore{store: store, maxSize: maxSize}
}

// Save 校验 r 为图片后保存到 dir 下，返回存储 key。
// thumb > 0 时等比缩放到 thumb x thumb 以内。
func (s *ImageStore) Save(ctx context.Context, dir string, r io.Reader, thumb uint) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrImageTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}

	if thumb > 0 {
		b := img.Bounds()
		if uint(b.Dx()) > thumb || uint(b.Dy()) > thumb {
			img = resize.Thumbnail(thumb, thumb, img, resize.Lanczos3)
			var buf bytes.Buffer
			if err := encode(&buf, img, format); err != nil {
				return "", fmt.Errorf("encode thumbnail: %w", err)
			}
			data = buf.Bytes()
		}
	}

	key := path.Join(dir, uuid.NewString()+"."+extension(format))
	if err := s.store.Write(ctx, key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}

func (s *ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.store.Delete(ctx, key)
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "gif":
		return gif.Encode(w, img, nil)
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
}

func extension(format string) string {
	switch format {
	case "png", "gif":
		return format
	default:
		return "jpg"
	}
}
