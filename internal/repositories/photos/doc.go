// Package photos provides the persistence layer for photo records.
//
// Tags and EXIF metadata are stored as JSON text columns. Reads return Row
// values holding the raw column text; Row.Photo decodes them and falls back
// to an empty tag list and nil EXIF when a column does not parse, reporting
// the decode error alongside the usable record.
//
// img_url and exif_data are written only by Insert. Update overwrites the
// descriptive columns and stamps updated_at.
package photos
