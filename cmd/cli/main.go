//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/himanishpuri/BeatPattern/internal/config"
	"github.com/himanishpuri/BeatPattern/internal/format"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern"
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/beatmap"
	"github.com/himanishpuri/BeatPattern/pkg/logger"
	"github.com/himanishpuri/BeatPattern/pkg/models"
	"github.com/himanishpuri/BeatPattern/pkg/utils"
)

// Global flags
var (
	dbPath     string
	configPath string
	workers    int
)

func init() {
	flag.StringVar(&dbPath, "db", "", "Path to the SQLite database file (env: BEATPATTERN_DB_PATH)")
	flag.StringVar(&configPath, "config", os.Getenv("BEATPATTERN_CONFIG"), "Path to a TOML config file")
	flag.IntVar(&workers, "workers", 0, "Concurrent window scans (0 uses the config value)")
}

// loadConfig merges the config file with command line overrides.
func loadConfig() *config.Config {
	log := logger.GetLogger()

	conf, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		log.Errorf("Config load failed: %v", err)
		os.Exit(1)
	}
	if dbPath != "" {
		conf.Database.Path = dbPath
	}
	if workers > 0 {
		conf.Analysis.Workers = workers
	}
	conf.ApplyLogLevel()
	return conf
}

// createService creates a new BeatPattern service with configured options
func createService(conf *config.Config) beatpattern.Service {
	opts := append(conf.ServiceOptions(), beatpattern.WithLogger(logger.GetLogger().WithPrefix("cli")))
	svc, err := beatpattern.NewService(opts...)
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		logger.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	return svc
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	logger.Debugf("Executing command: %s", command)

	conf := loadConfig()

	switch command {
	case "analyze":
		handleAnalyze(conf, args[1:])
	case "list":
		handleList(conf, args[1:])
	case "show":
		handleShow(conf, args[1:])
	case "delete":
		handleDelete(conf, args[1:])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// splitPositional separates a leading positional argument from the flags
// that follow it.
func splitPositional(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

func handleAnalyze(conf *config.Config, args []string) {
	log := logger.GetLogger()

	path, flagArgs := splitPositional(args)

	analyzeCmd := flag.NewFlagSet("analyze", flag.ExitOnError)
	save := analyzeCmd.Bool("save", false, "Store the analysis in the database")
	outFormat := analyzeCmd.String("format", "text", "Output format: text, json or msgpack")
	analyzeCmd.Parse(flagArgs)

	if path == "" {
		path = analyzeCmd.Arg(0)
	}
	if path == "" {
		fmt.Println("Usage: beatpattern analyze <file.osu> [--save] [--format text|json|msgpack]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var res *models.AnalysisResult
	var err error
	if *save {
		svc := createService(conf)
		defer svc.Close()
		res, err = svc.AddBeatmapFile(ctx, path)
	} else {
		var m *models.Beatmap
		m, err = beatmap.ParseFile(path)
		if err == nil {
			res = beatpattern.AnalyzeBeatmap(m, conf.ServiceOptions()...)
		}
	}
	if err != nil {
		fmt.Printf("❌ Failed to analyze %s: %v\n", path, err)
		log.Errorf("Analyze failed: %v", err)
		os.Exit(1)
	}

	writeResult(res, *outFormat)
}

func handleList(conf *config.Config, args []string) {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	filter := listCmd.String("beatmap", "", "Only show analyses of this beatmap (osu! URL or ID)")
	listCmd.Parse(args)

	beatmapID := 0
	if *filter != "" {
		id, err := utils.ExtractBeatmapID(*filter)
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		beatmapID = id
	}

	svc := createService(conf)
	defer svc.Close()

	results, err := svc.ListAnalyses()
	if err != nil {
		fmt.Printf("❌ Failed to list analyses: %v\n", err)
		logger.Errorf("ListAnalyses failed: %v", err)
		os.Exit(1)
	}

	if beatmapID > 0 {
		filtered := results[:0]
		for _, r := range results {
			if r.Metadata.BeatmapID == beatmapID {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if len(results) == 0 {
		fmt.Println("\n📭 No analyses in database")
		return
	}

	fmt.Printf("\n📚 Found %d analys%s:\n\n", len(results), plural(len(results), "is", "es"))
	for i, r := range results {
		fmt.Printf("%d. %s\n", i+1, title(r.Metadata))
		fmt.Printf("   ID: %s | %s notes | %.1f BPM | %s\n",
			r.ID, humanize.Comma(int64(r.NoteCount)), r.BPM, humanize.Time(r.CreatedAt))
		fmt.Printf("   Jump: %.2f | Stream: %.2f\n\n", r.Jump.OverallConfidence, r.Stream.OverallConfidence)
	}
}

func handleShow(conf *config.Config, args []string) {
	id, flagArgs := splitPositional(args)

	showCmd := flag.NewFlagSet("show", flag.ExitOnError)
	outFormat := showCmd.String("format", "text", "Output format: text, json or msgpack")
	showCmd.Parse(flagArgs)

	if !utils.IsValidUUID(id) {
		fmt.Println("Usage: beatpattern show <analysis_id> [--format text|json|msgpack]")
		os.Exit(1)
	}

	svc := createService(conf)
	defer svc.Close()

	res, err := svc.GetAnalysis(id)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		logger.Warnf("Analysis %s not found: %v", id, err)
		os.Exit(1)
	}
	writeResult(res, *outFormat)
}

func handleDelete(conf *config.Config, args []string) {
	if len(args) < 1 || !utils.IsValidUUID(args[0]) {
		fmt.Println("Usage: beatpattern delete <analysis_id>")
		os.Exit(1)
	}
	id := args[0]

	svc := createService(conf)
	defer svc.Close()

	res, err := svc.GetAnalysis(id)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		logger.Warnf("Analysis %s not found: %v", id, err)
		os.Exit(1)
	}

	if err := svc.DeleteAnalysis(id); err != nil {
		fmt.Printf("❌ Failed to delete analysis: %v\n", err)
		logger.Errorf("DeleteAnalysis failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Deleted analysis %s of %s\n", id, title(res.Metadata))
	logger.Infof("Deleted analysis ID=%s", id)
}

func writeResult(res *models.AnalysisResult, outFormat string) {
	if outFormat == "text" {
		printResult(res)
		return
	}
	if err := format.Encode(os.Stdout, outFormat, res); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func printResult(r *models.AnalysisResult) {
	fmt.Printf("\n🎵 %s\n", title(r.Metadata))
	if r.ID != "" {
		fmt.Printf("   ID:    %s\n", r.ID)
	}
	if link := utils.BeatmapURL(r.Metadata.BeatmapSetID, r.Metadata.BeatmapID); link != "" {
		fmt.Printf("   URL:   %s\n", link)
	}
	fmt.Printf("   Notes: %s\n", humanize.Comma(int64(r.NoteCount)))
	fmt.Printf("   BPM:   %.2f\n", r.BPM)

	j := r.Jump
	fmt.Printf("\n🦘 Jumps       confidence %.3f\n", j.OverallConfidence)
	fmt.Printf("   total %d (short %d, medium %d, long %d), longest %d\n",
		j.TotalJumpCount, j.ShortJumps, j.MediumJumps, j.LongJumps, j.MaxJumpLength)
	fmt.Printf("   density %.3f, bpm consistency %.3f\n", j.JumpDensity, j.BPMConsistency)

	s := r.Stream
	fmt.Printf("\n🌊 Streams     confidence %.3f\n", s.OverallConfidence)
	fmt.Printf("   total %d (short %d, medium %d, long %d), bursts %d, longest %d\n",
		s.TotalStreamCount, s.ShortStreams, s.MediumStreams, s.LongStreams, s.Bursts, s.MaxStreamLength)
	fmt.Printf("   density %.3f, bpm consistency %.3f\n\n", s.StreamDensity, s.BPMConsistency)
}

func title(m models.Metadata) string {
	t := fmt.Sprintf("%s - %s", m.Artist, m.Title)
	if m.Version != "" {
		t += fmt.Sprintf(" [%s]", m.Version)
	}
	if m.Creator != "" {
		t += " by " + m.Creator
	}
	return t
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printUsage() {
	fmt.Println("BeatPattern - jump and stream detection for osu! beatmaps")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  --db <path>        Path to SQLite database (env: BEATPATTERN_DB_PATH, default: beatpattern.sqlite3)")
	fmt.Println("  --config <path>    TOML config file (env: BEATPATTERN_CONFIG)")
	fmt.Println("  --workers <n>      Concurrent window scans")
	fmt.Println("\nUsage:")
	fmt.Println("  beatpattern [global-options] analyze <file.osu> [--save] [--format text|json|msgpack]")
	fmt.Println("  beatpattern [global-options] list [--beatmap <osu! URL or ID>]")
	fmt.Println("  beatpattern [global-options] show <analysis_id> [--format text|json|msgpack]")
	fmt.Println("  beatpattern [global-options] delete <analysis_id>")
	fmt.Println("\nExamples:")
	fmt.Println("  beatpattern analyze map.osu")
	fmt.Println("  beatpattern --db maps.sqlite3 analyze map.osu --save --format json")
}
