package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/client/models"
)

var errEmptyInput = errors.New("name and content must not be empty")

func (a *App) List(ctx context.Context) error {
	list, err := a.client.ListFiles(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No files")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED")
	for _, f := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Name, f.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return err
	}
	if name == "" || content == "" {
		return errEmptyInput
	}

	id, err := a.client.AddFile(ctx, name, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s\n", id)
	return nil
}

func (a *App) Show(ctx context.Context, id string) error {
	f, err := a.client.GetFile(ctx, id)
	if err != nil {
		return err
	}
	a.printFile(f)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	name, err := a.client.DeleteFile(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q\n", name)
	return nil
}

func (a *App) Share(ctx context.Context, id string) error {
	link, err := a.client.ShareFile(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Share with: open %s %s\n", link.FileID, link.Code)
	return nil
}

func (a *App) Open(ctx context.Context, id, code string) error {
	f, err := a.client.OpenShared(ctx, id, code)
	if err != nil {
		return err
	}
	a.printFile(f)
	return nil
}

func (a *App) printFile(f *models.File) {
	fmt.Fprintf(a.out, "%s (%s)\n%s\n", f.Name, f.ID, f.Content)
}
