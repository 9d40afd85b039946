package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/report"
	"github.com/munavvarfyrooz/accuport.cloud/src/store"
	"github.com/munavvarfyrooz/accuport.cloud/src/waterlog"
)

const dateLayout = "2006-01-02"

func main() {
	var (
		vesselID  int64
		dbPath    string
		startStr  string
		endStr    string
		outputDir string
		sections  string
		assetsDir string
		logLevel  string
	)
	flag.Int64Var(&vesselID, "vessel", 0, "Vessel database ID (required)")
	flag.StringVar(&dbPath, "db", "accubase.sqlite", "Path to the lab-results database")
	flag.StringVar(&startStr, "start-date", "", "Start date (YYYY-MM-DD, default end-date minus 30 days)")
	flag.StringVar(&endStr, "end-date", "", "End date (YYYY-MM-DD, default today)")
	flag.StringVar(&outputDir, "output-dir", "reports", "Output directory")
	flag.StringVar(&sections, "sections", "", "Comma-separated section keys (default all: "+strings.Join(report.SectionKeys(), ",")+")")
	flag.StringVar(&assetsDir, "assets", "", "Directory with cover.png, content.png, back.png page artwork")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default ACCUPORT_LOG_LEVEL or info)")
	flag.Parse()

	if logLevel != "" {
		waterlog.SetLogLevel(logLevel)
	}

	if vesselID == 0 {
		fmt.Fprintln(os.Stderr, "error: -vessel is required")
		flag.Usage()
		os.Exit(2)
	}

	end := time.Now()
	if endStr != "" {
		var err error
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			fatalf("invalid -end-date %q: %v", endStr, err)
		}
	}
	start := end.AddDate(0, 0, -30)
	if startStr != "" {
		var err error
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			fatalf("invalid -start-date %q: %v", startStr, err)
		}
	}

	var sectionKeys []string
	if sections != "" {
		sectionKeys = strings.Split(sections, ",")
		for i, k := range sectionKeys {
			sectionKeys[i] = strings.TrimSpace(k)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer db.Close()

	vessel, err := db.VesselByID(vesselID)
	if err != nil {
		fatalf("%v", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fatalf("create output dir: %v", err)
	}

	waterlog.Infof("generating report for %s", vessel.Name)
	waterlog.Infof("period: %s to %s", start.Format(dateLayout), end.Format(dateLayout))

	var assets report.Assets
	if assetsDir != "" {
		assets = report.Assets{
			CoverImage:   filepath.Join(assetsDir, "cover.png"),
			ContentImage: filepath.Join(assetsDir, "content.png"),
			BackImage:    filepath.Join(assetsDir, "back.png"),
		}
	}

	w := report.NewWriter(report.Meta{
		VesselName:  vessel.Name,
		IMONumber:   vessel.IMONumber,
		CompanyName: vessel.CompanyName,
		PeriodStart: start.Format(dateLayout),
		PeriodEnd:   end.Format(dateLayout),
	}, assets)

	composer := report.NewComposer(db, limits.NewResolver(db))
	if err := composer.Generate(w, report.Request{
		VesselID: vesselID,
		Start:    start,
		End:      end,
		Sections: sectionKeys,
	}); err != nil {
		fatalf("generate report: %v", err)
	}

	pdfBytes, err := w.Output()
	if err != nil {
		fatalf("write pdf: %v", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.pdf",
		strings.ReplaceAll(vessel.Name, " ", "_"),
		start.Format("20060102"), end.Format("20060102"))
	outputPath := filepath.Join(outputDir, filename)

	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		fatalf("write %s: %v", outputPath, err)
	}

	fmt.Printf("Report generated: %s (%.1f KB)\n", outputPath, float64(len(pdfBytes))/1024)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
