// Package commands holds the CLI subcommands registered on the app's root
// command.
package commands

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"estimatebuilder/config"
	"estimatebuilder/services"
)

type estimateOptions struct {
	items    string
	client   string
	email    string
	currency string
	out      string
	excel    bool
	share    bool
	draft    bool
}

// NewEstimateCommand returns the `estimate` command: it builds an estimate
// from an item file and writes the PDF (and optionally Excel and an email
// draft) without starting the server.
func NewEstimateCommand(settings *config.Settings) *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Generate an estimate PDF from a CSV or XLSX item file",
		Example: `  app estimate --items items.csv --client "Jane Doe" --currency € --excel
  app estimate --items items.xlsx --client "Jane Doe" --email jane@example.com --share --draft`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd.OutOrStdout(), opts, settings, time.Now(), rand.Reader)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.items, "items", "i", "", "CSV or XLSX file with the materials (required)")
	f.StringVar(&opts.client, "client", "", "client name")
	f.StringVar(&opts.email, "email", "", "client email")
	f.StringVar(&opts.currency, "currency", "", "currency symbol or ISO code (default from settings)")
	f.StringVarP(&opts.out, "out", "o", "", "output directory (default from settings)")
	f.BoolVar(&opts.excel, "excel", false, "also write an Excel workbook")
	f.BoolVar(&opts.share, "share", false, "print the chat and email share texts and links")
	f.BoolVar(&opts.draft, "draft", false, "also write an .eml draft with the PDF attached")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

func runEstimate(w io.Writer, opts *estimateOptions, settings *config.Settings, now time.Time, rnd io.Reader) error {
	okf := color.New(color.FgGreen).FprintfFunc()
	warnf := color.New(color.FgYellow).FprintfFunc()
	bold := color.New(color.Bold).SprintFunc()

	est, err := buildEstimate(w, opts, settings, now, rnd, warnf)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s (%s)\n", bold("Estimate"), est.Number, est.Date)
	fmt.Fprintf(w, "%d materials, total %s\n", len(est.Items), services.FormatMoney(est.Currency, est.Total()))

	outDir := opts.out
	if outDir == "" {
		outDir = settings.ExportDir
	}
	branding := settings.Branding()

	pdf, err := services.GenerateEstimatePDF(est, branding)
	if err != nil {
		return err
	}
	pdfName := services.ExportFilename(est.Number, now, "pdf")
	path, err := services.SaveExport(outDir, pdfName, pdf)
	if err != nil {
		return err
	}
	pages, err := services.PDFPageCount(pdf)
	if err != nil {
		return err
	}
	okf(w, "Saved %s (%s, %s)\n", path, english.Plural(pages, "page", ""), humanize.Bytes(uint64(len(pdf))))

	if opts.excel {
		xlsx, err := services.GenerateEstimateExcel(est, branding)
		if err != nil {
			return err
		}
		path, err := services.SaveExport(outDir, services.ExportFilename(est.Number, now, "xlsx"), xlsx)
		if err != nil {
			return err
		}
		okf(w, "Saved %s (%s)\n", path, humanize.Bytes(uint64(len(xlsx))))
	}

	if opts.draft {
		eml, err := services.EmailDraft(est, pdf, pdfName, settings.MailFrom)
		if err != nil {
			return err
		}
		path, err := services.SaveExport(outDir, strings.TrimSuffix(pdfName, ".pdf")+".eml", eml)
		if err != nil {
			return err
		}
		okf(w, "Saved %s (%s)\n", path, humanize.Bytes(uint64(len(eml))))
	}

	if opts.share {
		printShare(w, est, warnf)
	}
	return nil
}

// buildEstimate reads the item file and applies the client flags. Rows with
// problems are reported and skipped; an estimate without any valid row is an
// error.
func buildEstimate(w io.Writer, opts *estimateOptions, settings *config.Settings, now time.Time, rnd io.Reader, warnf func(io.Writer, string, ...any)) (*services.Estimate, error) {
	f, err := os.Open(opts.items)
	if err != nil {
		return nil, fmt.Errorf("open item file: %w", err)
	}
	defer f.Close()

	result, err := services.ParseItemsFile(f, opts.items)
	if err != nil {
		return nil, err
	}
	for _, ie := range result.Errors {
		warnf(w, "row %d: %s: %s\n", ie.Row, ie.Field, ie.Message)
	}

	est, err := services.NewEstimate(now, rnd)
	if err != nil {
		return nil, err
	}

	currency := opts.currency
	if currency == "" {
		currency = string(settings.Currency())
	}
	if err := est.Apply(
		services.SetClientName(opts.client),
		services.SetClientEmail(opts.email),
		services.SetCurrency(currency),
	); err != nil {
		return nil, err
	}

	for _, in := range result.Items {
		item, err := services.NewMaterialItem(in)
		if err != nil {
			return nil, err
		}
		est.AddItem(item)
	}
	if err := services.RequireItems(est); err != nil {
		return nil, err
	}
	return est, nil
}

// printShare prints the share texts whose preconditions hold and explains
// the ones that are skipped.
func printShare(w io.Writer, est *services.Estimate, warnf func(io.Writer, string, ...any)) {
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()

	if link, err := services.WhatsAppLink(est); err == nil {
		msg, _ := services.ChatMessage(est)
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", heading("Chat message"), msg, link)
	} else {
		warnf(w, "chat share skipped: %s\n", userMessage(err))
	}

	if link, err := services.MailtoLink(est); err == nil {
		body, _ := services.EmailBody(est)
		fmt.Fprintf(w, "\n%s\nSubject: %s\n\n%s\n%s\n", heading("Email"), services.EmailSubject(est), body, link)
	} else {
		warnf(w, "email share skipped: %s\n", userMessage(err))
	}
}

func userMessage(err error) string {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return services.UserMessage(err)
	}
	return err.Error()
}
