package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

func (a *App) Photos(ctx context.Context, _ []string) error {
	all, err := a.store.ListPhotos(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		a.printf("No photos yet\n")
		return nil
	}
	for _, p := range all {
		a.printf("#%d  %s", p.ID, p.Title)
		if p.Location != "" {
			a.printf("  @ %s", p.Location)
		}
		if len(p.Tags) > 0 {
			a.printf("  [%s]", strings.Join(p.Tags, ", "))
		}
		a.printf("\n")
	}
	return nil
}

func (a *App) AddPhoto(ctx context.Context, _ []string) error {
	var in models.PhotoInput
	var err error

	if in.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if in.Img, err = a.ask("Image URL or data URI"); err != nil {
		return err
	}
	if in.Location, err = a.ask("Location (optional)"); err != nil {
		return err
	}
	if in.Date, err = a.ask("Date (optional)"); err != nil {
		return err
	}
	if in.Tags, err = GetTags(a.reader, "Tags, comma separated (optional)", a.out); err != nil {
		return err
	}

	p, err := a.store.InsertPhoto(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Photo #%d added\n", p.ID)
	return nil
}

func (a *App) getPhoto(ctx context.Context, args []string) (*models.Photo, error) {
	id, err := a.idArg(args, "Photo id")
	if err != nil {
		return nil, err
	}
	p, err := a.store.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("photo #%d not found", id)
	}
	return p, nil
}

func (a *App) Photo(ctx context.Context, args []string) error {
	p, err := a.getPhoto(ctx, args)
	if err != nil {
		return err
	}

	a.printf("#%d %s\n", p.ID, p.Title)
	a.printf("Location: %s\n", p.Location)
	a.printf("Date: %s\n", p.Date)
	a.printf("Image: %s\n", abbreviate(p.Img, 80))
	a.printf("Tags: %s\n", strings.Join(p.Tags, ", "))
	a.printf("Created: %s\n", p.CreatedAt)
	if p.UpdatedAt != nil {
		a.printf("Updated: %s\n", *p.UpdatedAt)
	}
	if fields, err := p.Exif.Fields(); err == nil && len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		a.printf("EXIF:\n")
		for _, k := range keys {
			a.printf("  %s: %v\n", k, fields[k])
		}
	}
	return nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (" + strconv.Itoa(len(s)) + " bytes)"
}

// EditPhoto prompts for every editable field with the current value as the
// default. An empty answer keeps it; "-" clears the tags.
func (a *App) EditPhoto(ctx context.Context, args []string) error {
	p, err := a.getPhoto(ctx, args)
	if err != nil {
		return err
	}

	keep := func(prompt, current string) (string, error) {
		v, err := a.ask(fmt.Sprintf("%s [%s]", prompt, current))
		if err != nil || v == "" {
			return current, err
		}
		return v, nil
	}

	u := models.PhotoUpdate{Tags: p.Tags}
	if u.Title, err = keep("Title", p.Title); err != nil {
		return err
	}
	if u.Location, err = keep("Location", p.Location); err != nil {
		return err
	}
	if u.Date, err = keep("Date", p.Date); err != nil {
		return err
	}
	tags, err := a.ask(fmt.Sprintf("Tags [%s] ('-' clears)", strings.Join(p.Tags, ", ")))
	if err != nil {
		return err
	}
	switch tags {
	case "":
	case "-":
		u.Tags = []string{}
	default:
		u.Tags = splitTags(tags)
	}

	res, err := a.store.UpdatePhoto(ctx, p.ID, u)
	if err != nil {
		return err
	}
	if !res.Matched {
		return fmt.Errorf("photo #%d not found", p.ID)
	}
	a.printf("Photo #%d updated\n", p.ID)
	return nil
}

// DeletePhoto removes one photo, or all given ids in one transaction.
func (a *App) DeletePhoto(ctx context.Context, args []string) error {
	if len(args) > 1 {
		ids := make([]int64, 0, len(args))
		for _, s := range args {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", s)
			}
			ids = append(ids, id)
		}
		n, err := a.store.DeletePhotosBatch(ctx, ids)
		if err != nil {
			return err
		}
		a.printf("%d of %d photos deleted\n", n, len(ids))
		return nil
	}

	id, err := a.idArg(args, "Photo id to delete")
	if err != nil {
		return err
	}
	deleted, err := a.store.DeletePhoto(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		a.printf("Photo #%d not found\n", id)
		return nil
	}
	a.printf("Photo #%d deleted\n", id)
	return nil
}
