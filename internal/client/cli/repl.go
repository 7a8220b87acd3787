package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Plans(ctx context.Context, args []string) error
	AddPlan(ctx context.Context, args []string) error
	DeletePlan(ctx context.Context, args []string) error
	Photos(ctx context.Context, args []string) error
	AddPhoto(ctx context.Context, args []string) error
	Photo(ctx context.Context, args []string) error
	EditPhoto(ctx context.Context, args []string) error
	DeletePhoto(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	ExportSQL(ctx context.Context, args []string) error
	ExportDB(ctx context.Context, args []string) error
	ImportDB(ctx context.Context, args []string) error
	Clear(ctx context.Context, args []string) error
	Token(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  plans                     list travel plans
  addplan                   add a travel plan
  delplan <id>              delete a travel plan
  photos                    list photos
  addphoto                  add a photo
  photo <id>                show one photo
  editphoto <id>            edit title, location, date and tags of a photo
  delphoto <id> [id...]     delete one or more photos
  stats                     show counts and database size
  save                      persist the database now
  reload                    discard unsaved changes and reload the snapshot
  exportsql [file]          export plans as SQL INSERT statements
  exportdb [file]           export the database file
  importdb <file>           replace the database with a file
  clear                     delete every plan and photo
  token [subject]           print a bearer token for the HTTP API
  help                      show this help
  exit | quit               leave the program`

// runREPL starts a simple read–eval–print loop for the tripkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens. Errors returned by
// a command are printed and the loop continues. The loop exits on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "trip %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "plans":
			cmdErr = a.Plans(ctx, args)
		case "addplan":
			cmdErr = a.AddPlan(ctx, args)
		case "delplan":
			cmdErr = a.DeletePlan(ctx, args)
		case "photos":
			cmdErr = a.Photos(ctx, args)
		case "addphoto":
			cmdErr = a.AddPhoto(ctx, args)
		case "photo":
			cmdErr = a.Photo(ctx, args)
		case "editphoto":
			cmdErr = a.EditPhoto(ctx, args)
		case "delphoto":
			cmdErr = a.DeletePhoto(ctx, args)
		case "stats":
			cmdErr = a.Stats(ctx, args)
		case "save":
			cmdErr = a.Save(ctx, args)
		case "reload":
			cmdErr = a.Reload(ctx, args)
		case "exportsql":
			cmdErr = a.ExportSQL(ctx, args)
		case "exportdb":
			cmdErr = a.ExportDB(ctx, args)
		case "importdb":
			cmdErr = a.ImportDB(ctx, args)
		case "clear":
			cmdErr = a.Clear(ctx, args)
		case "token":
			cmdErr = a.Token(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintf(out, "Error: %v\n", cmdErr)
		}
	}
}
