// Command caseindex-index builds a persistent positional inverted index
// from a CSV corpus of legal opinions.
//
//	caseindex-index -i dataset.csv -d dictionary.gob -p postings.txt
//
// It additionally writes document.gob next to the dictionary file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	caseindex "github.com/wizenheimer/caseindex"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fs := flag.NewFlagSet("caseindex-index", flag.ContinueOnError)
	csvPath := fs.String("i", "", "path to the input CSV dataset")
	dictPath := fs.String("d", "", "path to write the dictionary file")
	postingsPath := fs.String("p", "", "path to write the postings file")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *csvPath == "" || *dictPath == "" || *postingsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: caseindex-index -i <dataset.csv> -d <dictionary> -p <postings>")
		return 2
	}

	if err := indexCorpus(*csvPath, *dictPath, *postingsPath, logger); err != nil {
		var usageErr *caseindex.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.Error())
			return 2
		}
		logger.Error("indexing failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func indexCorpus(csvPath, dictPath, postingsPath string, logger *slog.Logger) error {
	factory := func() (caseindex.RecordSource, error) {
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, &caseindex.IOError{Op: "open dataset csv", Err: err}
		}
		// The RecordSource owns f: Index closes each source it opens once
		// its pass has drained it.
		return caseindex.NewCSVRecordSource(f, logger)
	}

	ix := caseindex.NewIndexer(postingsPath, caseindex.NewDefaultAnalyzer(), caseindex.DefaultIndexerConfig(), logger)
	if err := ix.Index(factory); err != nil {
		return err
	}

	if err := caseindex.SaveDictionary(dictPath, ix.Dictionary()); err != nil {
		return err
	}

	documentPath := filepath.Join(filepath.Dir(dictPath), "document.gob")
	if err := caseindex.SaveDocuments(documentPath, ix.Documents()); err != nil {
		return err
	}

	logger.Info("index written",
		slog.String("dictionary", dictPath),
		slog.String("documents", documentPath),
		slog.String("postings", postingsPath))
	return nil
}
