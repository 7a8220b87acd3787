package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
	fail  string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == f.fail {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeExec) Plans(_ context.Context, a []string) error      { return f.rec("plans", a) }
func (f *fakeExec) AddPlan(_ context.Context, a []string) error    { return f.rec("addplan", a) }
func (f *fakeExec) DeletePlan(_ context.Context, a []string) error { return f.rec("delplan", a) }
func (f *fakeExec) Photos(_ context.Context, a []string) error     { return f.rec("photos", a) }
func (f *fakeExec) AddPhoto(_ context.Context, a []string) error   { return f.rec("addphoto", a) }
func (f *fakeExec) Photo(_ context.Context, a []string) error      { return f.rec("photo", a) }
func (f *fakeExec) EditPhoto(_ context.Context, a []string) error  { return f.rec("editphoto", a) }
func (f *fakeExec) DeletePhoto(_ context.Context, a []string) error {
	return f.rec("delphoto", a)
}
func (f *fakeExec) Stats(_ context.Context, a []string) error     { return f.rec("stats", a) }
func (f *fakeExec) Save(_ context.Context, a []string) error      { return f.rec("save", a) }
func (f *fakeExec) Reload(_ context.Context, a []string) error    { return f.rec("reload", a) }
func (f *fakeExec) ExportSQL(_ context.Context, a []string) error { return f.rec("exportsql", a) }
func (f *fakeExec) ExportDB(_ context.Context, a []string) error  { return f.rec("exportdb", a) }
func (f *fakeExec) ImportDB(_ context.Context, a []string) error  { return f.rec("importdb", a) }
func (f *fakeExec) Clear(_ context.Context, a []string) error     { return f.rec("clear", a) }
func (f *fakeExec) Token(_ context.Context, a []string) error     { return f.rec("token", a) }

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"plans",
		"addplan",
		"delplan 3",
		"",
		"photos",
		"addphoto",
		"photo 7",
		"editphoto 7",
		"delphoto 1 2 3",
		"stats",
		"save",
		"reload",
		"exportsql out.sql",
		"exportdb",
		"importdb in.db",
		"clear",
		"token ops",
		"foobar",
		"exit",
		"plans",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(memory)" }, bufio.NewReader(strings.NewReader(input)), &out)

	want := []string{"plans", "addplan", "delplan", "photos", "addphoto", "photo", "editphoto",
		"delphoto", "stats", "save", "reload", "exportsql", "exportdb", "importdb", "clear", "token"}
	assert.Equal(t, want, exec.calls, "nothing runs after exit")
	assert.Equal(t, []string{"3"}, exec.args[2])
	assert.Equal(t, []string{"1", "2", "3"}, exec.args[7])

	s := out.String()
	assert.Contains(t, s, "trip (memory)> ")
	assert.Contains(t, s, "Available commands:")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{fail: "save"}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("save\nstats")), &out)

	assert.Equal(t, []string{"save", "stats"}, exec.calls, "the last line is read even without a newline")
	assert.Contains(t, out.String(), "Error: boom")
}

func TestRunREPL_EOF(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")), &out)

	assert.Empty(t, exec.calls)
}
