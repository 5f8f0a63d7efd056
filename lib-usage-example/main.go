package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sw33tLie/diskdiff/pkg/categorize"
	"github.com/sw33tLie/diskdiff/pkg/config"
	"github.com/sw33tLie/diskdiff/pkg/events"
	"github.com/sw33tLie/diskdiff/pkg/report"
	"github.com/sw33tLie/diskdiff/pkg/scan"
)

func main() {
	// Usage: go run *.go -dir /tmp/sandbox

	dirFlag := flag.String("dir", "", "Directory to watch")
	flag.Parse()

	if *dirFlag == "" {
		fmt.Println("A directory is required. Please provide it using -dir flag.")
		return
	}

	base := config.Default()
	cfg, err := base.WithRoots([]string{*dirFlag})
	if err != nil {
		fmt.Println(err)
		return
	}

	sc := &scan.Context{Config: cfg, Kinds: events.DefaultKinds()}

	// Any function can stand in for the monitored command.
	out, err := scan.Run(context.Background(), sc, func(ctx context.Context) error {
		path := filepath.Join(cfg.Roots[0], fmt.Sprintf("example-%d.txt", time.Now().UnixNano()))
		return os.WriteFile(path, []byte("hello\n"), 0o644)
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, b := range categorize.Buckets() {
		for _, p := range out.Result.Bucket(b).Born {
			fmt.Println(b, p)
		}
	}
	fmt.Println(report.FormatCount(out.Result.Count()), "files touched")
}
