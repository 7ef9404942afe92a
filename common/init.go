package common

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	PrintHelp    = flag.Bool("help", false, "print help and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
)

func printHelp() {
	fmt.Println("Blitz Gen " + Version + " - video generation orchestration service.")
	fmt.Println("Usage: blitz-gen [--port <port>] [--log-dir <log directory>] [--version] [--help]")
}

func Init() {
	flag.Parse()

	if *PrintVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	if *PrintHelp {
		printHelp()
		os.Exit(0)
	}

	// Priority: command line flag > environment variable > default.
	logDir := *LogDir
	if logDir == "" {
		logDir = os.Getenv("LOG_DIR")
	}
	if logDir == "" {
		logDir = "./logs"
	}

	if logDir != "" {
		var err error
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			err = os.Mkdir(logDir, 0777)
			if err != nil {
				log.Fatal(err)
			}
		}
		logger.LogDir = logDir
	}
}
