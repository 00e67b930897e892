// Command caseindex-search answers one query against a previously built
// index.
//
//	caseindex-search -d dictionary.gob -p postings.txt -q query.txt -o out.txt
//
// The query file's first line is the query string; subsequent lines each
// hold one relevant doc_id (the relevance-judgement seed R). The output
// file receives one line of space-separated doc_ids in result order, or,
// if the query failed to parse, a single diagnostic line and no ranking.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	caseindex "github.com/wizenheimer/caseindex"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	fs := flag.NewFlagSet("caseindex-search", flag.ContinueOnError)
	dictPath := fs.String("d", "", "path to the dictionary file")
	postingsPath := fs.String("p", "", "path to the postings file")
	queryPath := fs.String("q", "", "path to the query file")
	outPath := fs.String("o", "", "path to write the output file")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *dictPath == "" || *postingsPath == "" || *queryPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: caseindex-search -d <dictionary> -p <postings> -q <query-file> -o <output-file>")
		return 2
	}

	if err := search(*dictPath, *postingsPath, *queryPath, *outPath, logger); err != nil {
		var usageErr *caseindex.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, usageErr.Error())
			return 2
		}
		logger.Error("search failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func search(dictPath, postingsPath, queryPath, outPath string, logger *slog.Logger) error {
	dict, err := caseindex.LoadDictionary(dictPath)
	if err != nil {
		return err
	}
	documentPath := filepath.Join(filepath.Dir(dictPath), "document.gob")
	docs, err := caseindex.LoadDocuments(documentPath)
	if err != nil {
		return err
	}
	reader := caseindex.NewIndexReader(dict, docs, caseindex.OpenPostingsFile(postingsPath))
	engine := caseindex.NewSearchEngine(reader, caseindex.NewDefaultAnalyzer(), nil, logger)

	queryLine, relevant, err := readQueryFile(queryPath)
	if err != nil {
		return err
	}

	results, searchErr := engine.Search(queryLine, relevant)

	out, err := os.Create(outPath)
	if err != nil {
		return &caseindex.IOError{Op: "create output file", Err: err}
	}
	defer out.Close()

	var parseErr *caseindex.ParseError
	if errors.As(searchErr, &parseErr) {
		fmt.Fprintln(out, parseErr.Error())
		return nil
	}
	if searchErr != nil {
		return searchErr
	}

	fmt.Fprintln(out, joinInts(results))
	logger.Info("query answered", slog.String("query", queryLine), slog.Int("results", len(results)))
	return nil
}

func readQueryFile(path string) (string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, &caseindex.IOError{Op: "open query file", Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", nil, &caseindex.FormatError{Msg: "query file is empty"}
	}
	queryLine := scanner.Text()

	var relevant []int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			return "", nil, &caseindex.FormatError{Msg: "malformed relevant doc_id: " + line}
		}
		relevant = append(relevant, id)
	}
	if err := scanner.Err(); err != nil {
		return "", nil, &caseindex.IOError{Op: "read query file", Err: err}
	}
	return queryLine, relevant, nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
