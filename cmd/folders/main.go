package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

const app = "folders"

var gitRepo = "owservable/folders"
var gitCommit = "unknown"
var gitTag = "unknown"

func version() string {
	if gitTag == "" {
		gitTag = "err-no-git-tag"
	}

	return "dist=" + gitRepo + "; version=" + gitTag + "; commit=" + gitCommit
}

func main() {
	configureLogrus()

	if err := newRootCommand().Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogrus() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true

	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		customFormatter.DisableColors = true
		color.NoColor = true
	}

	log.SetFormatter(customFormatter)
	log.SetOutput(os.Stderr)
}
