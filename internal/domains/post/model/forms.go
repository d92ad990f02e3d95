package model

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"yatube/internal/domains/group"
	"yatube/internal/infrastructure/storage"
	"yatube/internal/shared/forms"
)

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgImageTooLarge = "The image is too large. Maximum size is 5 MB."
	msgImageTooWide  = "The image dimensions are too large. Maximum is 40 megapixels."
	msgEmptyFile     = "The submitted file is empty."

	MsgUploadsUnavailable = "Image uploads are temporarily unavailable."
)

// Upload is a file received from a multipart form
type Upload struct {
	Filename string
	Data     []byte
}

// PostForm - /create/ and /posts/{id}/edit/. Image is filled by the handler.
type PostForm struct {
	Text    string  `form:"text"`
	GroupID string  `form:"group"`
	Image   *Upload `form:"-"`
}

// PostFields is a validated PostForm
type PostFields struct {
	Text    string
	GroupID *int64
	Image   *ValidImage
}

// ValidImage is an upload whose content decoded as a supported image
type ValidImage struct {
	Data []byte
	Info *storage.ImageInfo
}

// FormFromPost pre-fills the edit form
func FormFromPost(p *Post) PostForm {
	f := PostForm{Text: p.Text}
	if p.GroupID != nil {
		f.GroupID = strconv.FormatInt(*p.GroupID, 10)
	}
	return f
}

// CleanPostForm validates f against the available groups and checks the image
// by decoding its content. It never touches the database.
func CleanPostForm(f PostForm, groups []group.Group, images *storage.ImageProcessor) (*PostFields, forms.FieldErrors, error) {
	fields := &PostFields{Text: strings.TrimSpace(f.Text)}
	groupRaw := strings.TrimSpace(f.GroupID)

	err := validation.Errors{
		"text": validation.Validate(fields.Text, validation.Required.Error(msgRequired)),
		"group": validation.Validate(groupRaw, validation.By(func(any) error {
			if groupRaw == "" {
				return nil
			}
			id, err := strconv.ParseInt(groupRaw, 10, 64)
			if err != nil || !hasGroup(groups, id) {
				return validation.NewError("invalid_choice", msgInvalidChoice)
			}
			fields.GroupID = &id
			return nil
		})),
		"image": validation.Validate(f.Image, validation.By(func(any) error {
			if f.Image == nil {
				return nil
			}
			if len(f.Image.Data) == 0 {
				return validation.NewError("empty", msgEmptyFile)
			}
			info, err := images.ValidateImage(f.Image.Data)
			switch {
			case errors.Is(err, storage.ErrImageTooLarge):
				return validation.NewError("too_large", msgImageTooLarge)
			case errors.Is(err, storage.ErrTooManyPixels):
				return validation.NewError("too_many_pixels", msgImageTooWide)
			case err != nil:
				return validation.NewError("invalid_image", msgInvalidImage)
			}
			fields.Image = &ValidImage{Data: f.Image.Data, Info: info}
			return nil
		})),
	}.Filter()

	fe, ferr := forms.FromValidation(err)
	if ferr != nil {
		return nil, nil, ferr
	}
	if fe.Any() {
		return nil, fe, nil
	}
	return fields, fe, nil
}

func hasGroup(groups []group.Group, id int64) bool {
	for _, g := range groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

// CommentForm - /posts/{id}/comment/
type CommentForm struct {
	Text string `form:"text"`
}

// CleanCommentForm returns the trimmed comment text
func CleanCommentForm(f CommentForm) (string, forms.FieldErrors, error) {
	text := strings.TrimSpace(f.Text)
	err := validation.Errors{
		"text": validation.Validate(text, validation.Required.Error(msgRequired)),
	}.Filter()

	fe, ferr := forms.FromValidation(err)
	if ferr != nil {
		return "", nil, ferr
	}
	return text, fe, nil
}
