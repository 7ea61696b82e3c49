// Package scrape downloads the published report PDFs from the NCRB website,
// organized into year/category folders. It is the peripheral acquisition
// side of the system: best-effort fetching with no retries, producing the
// folder tree the extraction pipeline consumes.
package scrape

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultBaseURL is the year index page, with the year substituted in.
const DefaultBaseURL = "https://ncrb.gov.in/accidental-deaths-suicides-in-india-table-content.html?year=%d&category="

// DefaultOutputDir is where downloaded reports land.
const DefaultOutputDir = "all_ncrb_pdfs"

const downloadTimeout = 60 * time.Second

var (
	folderSuffix     = regexp.MustCompile(`--\s*(.+)`)
	leadingCode      = regexp.MustCompile(`^[0-9A-Z.]+_`)
	invalidFileChars = regexp.MustCompile(`[^a-zA-Z0-9 \-_]`)
)

// Link is one discovered PDF: where to fetch it and where to store it.
type Link struct {
	URL        string
	FileName   string
	FolderPath string
}

// Scraper fetches year index pages and downloads the PDFs they reference.
type Scraper struct {
	client    *http.Client
	baseURL   string
	outputDir string
}

// New creates a scraper writing under outputDir.
func New(outputDir string) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: downloadTimeout},
		baseURL:   DefaultBaseURL,
		outputDir: outputDir,
	}
}

// SetBaseURL overrides the year index URL template.
func (s *Scraper) SetBaseURL(template string) {
	s.baseURL = template
}

// FormatFolderName turns a category heading into a folder name: the text
// after "--" when present, with spaces replaced by underscores.
func FormatFolderName(name string) string {
	if m := folderSuffix.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[1])
	}
	return strings.ReplaceAll(name, " ", "_")
}

// CleanFilename strips leading numbering codes and invalid characters from a
// table title and returns a filesystem-safe name without extension.
func CleanFilename(name string) string {
	name = leadingCode.ReplaceAllString(name, "")
	name = invalidFileChars.ReplaceAllString(name, "")
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// LinksForYear fetches the index page for one year and returns every PDF
// link under its category headings, with the folder path each file belongs
// in.
func (s *Scraper) LinksForYear(year int) ([]Link, error) {
	pageURL := fmt.Sprintf(s.baseURL, year)

	resp, err := s.client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch index for year %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index for year %d returned status %d", year, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index for year %d: %w", year, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid index URL: %w", err)
	}

	var links []Link
	doc.Find("h2.c-genriccontent__subhead").Each(func(_ int, heading *goquery.Selection) {
		folder := FormatFolderName(strings.TrimSpace(heading.Text()))
		folderPath := filepath.Join(s.outputDir, fmt.Sprintf("%d", year), folder)

		table := heading.NextAllFiltered("table.c-table").First()
		if table.Length() == 0 {
			return
		}

		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header row
			}

			number := row.Find("td.w-10")
			name := row.Find("td.w-70")
			anchor := row.Find("a[href]").First()
			if number.Length() == 0 || name.Length() == 0 || anchor.Length() == 0 {
				return
			}

			href, _ := anchor.Attr("href")
			ref, err := url.Parse(href)
			if err != nil {
				return
			}

			links = append(links, Link{
				URL:        base.ResolveReference(ref).String(),
				FileName:   CleanFilename(strings.TrimSpace(name.Text())) + ".pdf",
				FolderPath: folderPath,
			})
		})
	})

	return links, nil
}

// Download fetches one PDF into its folder, creating the folder if needed.
func (s *Scraper) Download(link Link) error {
	resp, err := s.client.Get(link.URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", link.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s returned status %d", link.URL, resp.StatusCode)
	}

	if err := os.MkdirAll(link.FolderPath, 0o750); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", link.FolderPath, err)
	}

	path := filepath.Join(link.FolderPath, link.FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}

// Run downloads every report from startYear through endYear inclusive.
// Per-year and per-file failures are logged and skipped; the run itself
// always completes.
func (s *Scraper) Run(startYear, endYear int) {
	for year := startYear; year <= endYear; year++ {
		links, err := s.LinksForYear(year)
		if err != nil {
			log.Printf("year %d: %v", year, err)
			continue
		}
		if len(links) == 0 {
			log.Printf("no PDFs found for year %d, skipping", year)
			continue
		}

		for _, link := range links {
			if err := s.Download(link); err != nil {
				log.Printf("year %d: %v", year, err)
				continue
			}
			log.Printf("downloaded %s to %s", link.FileName, link.FolderPath)
		}
	}
}
