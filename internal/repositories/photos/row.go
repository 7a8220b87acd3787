package photos

import (
	"errors"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

// Row is a photos record as stored.
type Row struct {
	ID        int64
	Title     string
	Location  *string
	Date      *string
	Img       string
	Tags      *string
	Exif      *string
	CreatedAt string
	UpdatedAt *string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Photo decodes the row. The returned photo is always usable; a non-nil
// error means tags or exif did not parse and were replaced by [] or nil.
func (r Row) Photo() (models.Photo, error) {
	tags, terr := models.DecodeTags(r.Tags)
	exif, eerr := models.DecodeExif(r.Exif)
	if eerr != nil {
		exif = nil
	}

	return models.Photo{
		ID:        r.ID,
		Title:     r.Title,
		Location:  deref(r.Location),
		Date:      deref(r.Date),
		Img:       r.Img,
		Tags:      tags,
		Exif:      exif,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, errors.Join(terr, eerr)
}
