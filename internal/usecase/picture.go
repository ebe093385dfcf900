package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/media"

	"github.com/google/uuid"
)

// PictureUploader stores an encoded picture and returns its public URL.
type PictureUploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type pictureProcessor struct {
	uploader PictureUploader
}

// NewPictureProcessor returns a processor that re-encodes uploaded pictures.
// With a nil uploader the result is stored inline as a data URL.
func NewPictureProcessor(uploader PictureUploader) domain.PictureProcessor {
	return &pictureProcessor{uploader: uploader}
}

func (p *pictureProcessor) Process(ctx context.Context, userID, picture string) (string, error) {
	picture = strings.TrimSpace(picture)
	switch {
	case picture == "":
		return "", nil
	case strings.HasPrefix(picture, "https://"), strings.HasPrefix(picture, "http://"):
		return picture, nil
	case !media.IsDataURL(picture):
		return "", apperror.BadRequest("Profile picture must be an image data URL or an http(s) URL")
	}

	raw, err := media.DecodeDataURL(picture)
	if err != nil {
		return "", pictureError(err)
	}
	encoded, err := media.Normalize(raw)
	if err != nil {
		return "", pictureError(err)
	}

	if p.uploader == nil {
		return media.ToDataURL(encoded), nil
	}
	key := fmt.Sprintf("profiles/%s/%s.jpg", userID, uuid.NewString())
	url, err := p.uploader.Upload(ctx, key, "image/jpeg", encoded)
	if err != nil {
		return "", apperror.Unavailable(err)
	}
	return url, nil
}

func pictureError(err error) error {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return apperror.BadRequest("Profile picture is too large")
	case errors.Is(err, media.ErrNotDataURL), errors.Is(err, media.ErrUnsupportedImage):
		return apperror.BadRequest("Profile picture is not a supported image")
	default:
		return apperror.BadRequest("Profile picture could not be read")
	}
}
