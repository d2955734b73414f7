package pdf

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"genprd-backend/pkg/logger"

	"cloud.google.com/go/storage"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"google.golang.org/api/option"
)

//go:embed template.html
var templateHTML string

// Document is the view rendered into the PRD template. It is deliberately
// decoupled from the storage model: the caller flattens whatever it has into
// this shape.
type Document struct {
	ID              string
	ProductName     string
	DocumentVersion string
	DocumentStage   string
	ProjectOverview string
	OwnerName       string
	CreatedDate     string
	StartDate       string
	EndDate         string
	DocumentOwners  []string
	Developers      []string
	Stakeholders    []string
	DarciRoles      map[string]interface{}
	Sections        map[string]interface{}
	Timeline        map[string]interface{}
}

// Generator renders a PRD to PDF with headless Chrome and uploads the result
// to a Cloud Storage bucket, returning the public object URL.
type Generator struct {
	bucket   string
	folder   string
	client   *storage.Client
	template *template.Template
}

func NewGenerator(ctx context.Context, bucket, folder, credentialsFile string) (*Generator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	tmpl, err := template.New("prd").Funcs(template.FuncMap{
		"join": func(values []string) string {
			if len(values) == 0 {
				return "N/A"
			}
			return strings.Join(values, ", ")
		},
	}).Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PRD template: %w", err)
	}

	return &Generator{
		bucket:   bucket,
		folder:   folder,
		client:   client,
		template: tmpl,
	}, nil
}

// Generate renders doc and returns the public URL of the uploaded PDF.
func (g *Generator) Generate(ctx context.Context, doc *Document) (string, error) {
	var html bytes.Buffer
	if err := g.template.Execute(&html, doc); err != nil {
		return "", fmt.Errorf("failed to render PRD template: %w", err)
	}

	pdfBytes, err := printToPDF(ctx, html.String())
	if err != nil {
		return "", fmt.Errorf("failed to print PDF: %w", err)
	}

	objectName := g.objectName(doc)
	if err := g.upload(ctx, objectName, pdfBytes); err != nil {
		return "", fmt.Errorf("failed to upload PDF: %w", err)
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, objectName)
	logger.Log.WithField("object", objectName).Info("PRD exported")
	return publicURL, nil
}

func (g *Generator) objectName(doc *Document) string {
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, doc.ProductName)
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	return fmt.Sprintf("%s/PRD_%s_%s_%s.pdf", g.folder, safeName, doc.ID, timestamp)
}

func (g *Generator) upload(ctx context.Context, objectName string, data []byte) error {
	w := g.client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/pdf"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// printToPDF loads the rendered HTML in headless Chrome and prints it A4
// with backgrounds, matching the layout the web preview shows.
func printToPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)...)
	defer cancelAlloc()

	chromeCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	chromeCtx, cancelTimeout := context.WithTimeout(chromeCtx, 60*time.Second)
	defer cancelTimeout()

	var pdfBytes []byte
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBytes, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).  // A4 inches
				WithPaperHeight(11.69).
				WithMarginTop(0.79).
				WithMarginBottom(0.79).
				WithMarginLeft(0.59).
				WithMarginRight(0.59).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBytes, nil
}
