package docs_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/tradesim"
	"github.com/etnz/tradesim/cmd"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	sessionBlock = "session"
	consoleBlock = "console"
)

// Block is a fenced code block of a topic.
type Block struct {
	Type    string
	Content string
	Line    int
}

// parseBlocks returns the session and console blocks of a markdown file.
func parseBlocks(t *testing.T, file string) []Block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		lang := string(fcb.Language(content))
		if lang != sessionBlock && lang != consoleBlock {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, Block{
			Type:    lang,
			Content: b.String(),
			Line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// TestSessionBlocks runs the session blocks of every topic on a new account,
// and checks the output against the console block that follows.
func TestSessionBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			a, err := tradesim.NewAccount("docs", "USD", tradesim.DefaultPriceTable())
			if err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			s := cmd.NewSession(a, tradesim.M(1000, "USD"), &out)

			var previous string
			for _, block := range parseBlocks(t, file) {
				switch block.Type {
				case sessionBlock:
					out.Reset()
					if _, err := cmd.RunSession(context.Background(), strings.NewReader(block.Content), s, ""); err != nil {
						t.Fatalf("%s:%d: session failed: %v", file, block.Line, err)
					}
					previous = out.String()
				case consoleBlock:
					want := strings.TrimSpace(block.Content)
					got := strings.TrimSpace(previous)
					if want != got {
						t.Errorf("%s:%d: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n", file, block.Line, got, want)
					}
				}
			}
		})
	}
}
