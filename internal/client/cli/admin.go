package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/server/auth"
)

func (a *App) Stats(ctx context.Context, _ []string) error {
	st, err := a.store.GetStats(ctx)
	if err != nil {
		return err
	}
	a.printf("Plans: %d\nPhotos: %d\nSize: %d bytes (%.2f KB)\n", st.Plans, st.Photos, st.SizeBytes, st.SizeKB)
	return nil
}

func (a *App) Save(ctx context.Context, _ []string) error {
	if err := a.store.Save(ctx); err != nil {
		return err
	}
	a.printf("Saved\n")
	return nil
}

func (a *App) Reload(ctx context.Context, _ []string) error {
	if err := a.store.Reload(ctx); err != nil {
		return err
	}
	a.printf("Reloaded from snapshot\n")
	return nil
}

// ExportSQL prints the export, or writes it to args[0].
func (a *App) ExportSQL(ctx context.Context, args []string) error {
	text, err := a.store.ExportSQLText(ctx)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		a.printf("%s", text)
		return nil
	}
	if err := os.WriteFile(args[0], []byte(text), 0o644); err != nil {
		return err
	}
	a.printf("Exported to %s\n", args[0])
	return nil
}

// ExportDB writes the database image to args[0], or to its dated default
// name in the working directory.
func (a *App) ExportDB(ctx context.Context, args []string) error {
	f, err := a.store.ExportDatabaseFile(ctx)
	if err != nil {
		return err
	}
	name := f.Filename
	if len(args) > 0 {
		name = args[0]
	}
	if err := os.WriteFile(name, f.Data, 0o600); err != nil {
		return err
	}
	a.printf("Exported %d bytes to %s\n", len(f.Data), name)
	return nil
}

func (a *App) ImportDB(ctx context.Context, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		var err error
		if name, err = a.ask("Database file to import"); err != nil {
			return err
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.store.ImportDatabaseFile(ctx, f); err != nil {
		return err
	}
	a.printf("Imported %s\n", name)
	return nil
}

func (a *App) Clear(ctx context.Context, _ []string) error {
	answer, err := a.ask("Type 'yes' to delete every plan and photo")
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.printf("Cancelled\n")
		return nil
	}
	if err := a.store.ClearAll(ctx); err != nil {
		return err
	}
	a.printf("All data cleared\n")
	return nil
}

// Token prints a bearer token signed with the configured secret.
func (a *App) Token(_ context.Context, args []string) error {
	if a.config.TokenSecret == "" {
		return errors.New("token secret is not configured (-s)")
	}
	subject := "cli"
	if len(args) > 0 {
		subject = args[0]
	}
	tok, err := auth.GenerateToken(subject, []byte(a.config.TokenSecret), a.config.TokenValidity)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	a.printf("%s\n", tok)
	return nil
}
