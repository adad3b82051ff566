package docs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/zacgt/cgt"
)

const (
	ledgerBlock  = "ledger"
	jsonCheck    = "json check"
	consoleCheck = "console check"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file
	// (except readme.md) is listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error: %v", err)
	}
	for _, topic := range topics {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestGetTopic(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Errorf("GetTopic(%q) = nil error, want an error", "nope")
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) unexpected error: %v", err)
	}
	for _, title := range []string{"# Input format", "# Tax year", "# FIFO"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopic(*) does not contain %q", title)
		}
	}
	if strings.Contains(all, "# cgt documentation") {
		t.Errorf("GetTopic(*) contains the readme")
	}
	if !strings.HasPrefix(Readme(), "# cgt documentation") {
		t.Errorf("Readme() = %q, want the documentation index", Readme())
	}
}

// TestExamples replays every ledger example of the documentation and checks
// the blocks that follow it.
func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			r := exampleRunner{}
			for _, block := range parseMarkdown(t, file) {
				r.run(t, block)
			}
		})
	}
}

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns its example blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Info.Segment.Value(content))
		switch lang {
		case ledgerBlock, jsonCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var blockContent strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			blockContent.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Type:    lang,
			Content: blockContent.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber computes the line number of an offset in source.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

// exampleRunner keeps the outcome of the last ledger block for the checks
// that follow it.
type exampleRunner struct {
	result any    // the JSON result, decoded
	err    string // the error of the last ledger, if any
}

func (r *exampleRunner) run(t *testing.T, block *Block) {
	t.Helper()
	switch block.Type {
	case ledgerBlock:
		r.result, r.err = nil, ""
		txs, err := cgt.Parse(block.Content)
		if err != nil {
			r.err = err.Error()
			return
		}
		res, err := cgt.Compute(txs)
		if err != nil {
			r.err = err.Error()
			return
		}
		b, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("%s:%d: json.Marshal() unexpected error: %v", block.File, block.Line, err)
		}
		if err := json.Unmarshal(b, &r.result); err != nil {
			t.Fatalf("%s:%d: json.Unmarshal() unexpected error: %v", block.File, block.Line, err)
		}

	case consoleCheck:
		if want := strings.TrimSpace(block.Content); r.err != want {
			t.Errorf("%s:%d: error mismatch:\ngot:  %q\nwant: %q", block.File, block.Line, r.err, want)
		}

	case jsonCheck:
		if r.err != "" {
			t.Fatalf("%s:%d: ledger failed: %s", block.File, block.Line, r.err)
		}
		for _, line := range strings.Split(strings.TrimSpace(block.Content), "\n") {
			path, want, ok := strings.Cut(line, " = ")
			if !ok {
				t.Fatalf("%s:%d: malformed check %q, want <path> = <value>", block.File, block.Line, line)
			}
			got, err := jsonpath.Get(path, r.result)
			if err != nil {
				t.Errorf("%s:%d: jsonpath.Get(%q) unexpected error: %v", block.File, block.Line, path, err)
				continue
			}
			if fmt.Sprint(got) != want {
				t.Errorf("%s:%d: %s = %v, want %s", block.File, block.Line, path, got, want)
			}
		}
	}
}
