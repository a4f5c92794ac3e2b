package main

import (
	"bytes"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jasontconnell/cfexport/conf"
	"github.com/jasontconnell/cfexport/process"
)

func main() {
	start := time.Now()
	in := flag.String("i", "", "export xml file (entities.xml)")
	out := flag.String("o", "confluence_data.json", "output json filename")
	attach := flag.String("a", "", "attachments directory from the export")
	restore := flag.String("r", "", "directory to restore attachments into")
	es := flag.String("settings", "", "export settings file")
	q := flag.Bool("q", false, "quiet mode")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *debug {
		logger = logger.Level(zerolog.DebugLevel)
	}
	if *q {
		logger = zerolog.Nop()
	}

	if *in == "" {
		fail(logger, "input file is required (-i)", nil)
	}
	if *restore != "" && *attach == "" {
		fail(logger, "-r requires -a", nil)
	}

	escfg := conf.ExportSettings{}
	if *es != "" {
		var err error
		escfg, err = conf.LoadExportSettings(*es)
		if err != nil {
			fail(logger, "couldn't load export settings", err)
		}
	}

	settings, err := process.GetSettings(escfg, logger)
	if err != nil {
		fail(logger, "problem with settings", err)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fail(logger, "couldn't read input file", err)
	}

	result, err := process.Parse(bytes.NewReader(data), settings)
	if err != nil {
		fail(logger, "parsing export", err)
	}
	logger.Info().Int("parsed", result.Parsed).Int("skipped", result.Skipped).Msg("parsed export")

	ents := process.Project(result.Table, settings)

	res := process.ResolveResult{}
	if *attach != "" {
		res = process.ResolveAttachments(ents.Attachments, *attach, *restore, settings)
		logger.Info().Int("resolved", res.Resolved).Int("unresolved", res.Unresolved).Msg("resolved attachments")
	}

	copied := process.ExecuteCopies(res.Copies, logger)
	if len(res.Copies) > 0 {
		logger.Info().Int("requested", len(res.Copies)).Int("copied", copied).Str("dir", *restore).Msg("restored attachments")
	}

	docId := uuid.NewSHA1(uuid.NameSpaceOID, data).String()
	doc := process.Assemble(ents, result, res, copied, docId, settings)

	err = process.WriteDocument(*out, doc)
	if err != nil {
		fail(logger, "writing document", err)
	}

	logger.Info().Str("output", *out).Dur("elapsed", time.Since(start)).Msg("done")
}

func fail(logger zerolog.Logger, msg string, err error) {
	logger.Error().Err(err).Msg(msg)
	os.Exit(1)
}
