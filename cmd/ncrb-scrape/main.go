// Command ncrb-scrape downloads the published NCRB "Accidental Deaths &
// Suicides in India" report PDFs for a range of years, organizing them into
// year/category folders for ncrb-extract to consume. Downloads are best
// effort: failures are logged and skipped.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ncrbdata/ncrb-extract/internal/scrape"
)

func main() {
	start := time.Now()
	log.SetOutput(os.Stderr)

	outputDir := pflag.String("outdir", scrape.DefaultOutputDir, "Directory to download report PDFs into")
	startYear := pflag.Int("startyear", 1950, "First report year to download")
	endYear := pflag.Int("endyear", 2022, "Last report year to download")
	pflag.Parse()

	if *startYear > *endYear {
		log.Fatalf("startyear %d is after endyear %d", *startYear, *endYear)
	}

	s := scrape.New(*outputDir)
	s.Run(*startYear, *endYear)

	fmt.Printf("\nTotal time taken: %.2f seconds\n", time.Since(start).Seconds())
}
