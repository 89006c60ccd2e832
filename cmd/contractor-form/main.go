package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/nurpe/contractor-form/internal/client"
	"github.com/nurpe/contractor-form/internal/config"
	"github.com/nurpe/contractor-form/internal/form"
	"github.com/nurpe/contractor-form/internal/imagesize"
	"github.com/nurpe/contractor-form/internal/logger"
	"github.com/nurpe/contractor-form/internal/validation"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("contractor-form", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	firstName := fs.String("first-name", "", "contractor first name")
	lastName := fs.String("last-name", "", "contractor last name")
	contractorType := fs.String("type", "Osoba", "contractor type: Osoba or Firma")
	idNumber := fs.String("id-number", "", "PESEL for Osoba, NIP for Firma")
	image := fs.String("image", "", "photo path or URI (jpg/jpeg, square)")
	fs.String("api-url", "", "contractors service base URL")
	fs.String("api-token", "", "bearer token for the contractors service")
	fs.Duration("timeout", 0, "save request timeout")
	fs.Duration("image-timeout", 0, "image dimension lookup timeout")
	fs.String("env", "", "environment name")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(fs)
	if err == nil {
		err = cfg.ValidateClient()
	}
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 2
	}

	log := logger.New(cfg.Environment)
	f := newForm(cfg, log, stdout)

	fields := []struct {
		key   string
		value string
	}{
		{form.FieldFirstName, *firstName},
		{form.FieldLastName, *lastName},
		{form.FieldType, *contractorType},
		{form.FieldIDNumber, *idNumber},
		{form.FieldImage, *image},
	}
	for _, field := range fields {
		if err := f.SetField(field.key, field.value); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 2
		}
	}

	if res := f.Submit(ctx); !res.OK() {
		return 1
	}
	return 0
}

func newForm(cfg *config.Config, log zerolog.Logger, out io.Writer) *form.Form {
	lookup := imagesize.NewResolver(&http.Client{Timeout: cfg.Client.ImageLookupTimeout})
	checker := validation.NewImageChecker(lookup, log)
	saver := client.NewSaveClient(client.Config{
		BaseURL: cfg.Client.APIURL,
		Token:   cfg.Client.APIToken,
		Timeout: cfg.Client.SubmitTimeout,
	}, log)

	notifier := form.NotifierFunc(func(res form.Result) {
		fmt.Fprintln(out, res.Message())
	})
	return form.New(form.NewSubmitter(checker, saver, log), notifier)
}
