package chat2html_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-chat2html"
)

// Example converts a small log to HTML.
func Example() {
	conv, err := chat2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), chat2html.Input{
		Log: []byte(`[{"Character": "Ada", "conversations": [
			{"from": "human", "value": "Hi"},
			{"from": "gpt", "value": "**Hello** there"}
		]}]`),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	html := string(result.HTML)
	fmt.Println(strings.Contains(html, "<h1>Entry 1: Ada</h1>"))
	fmt.Println(strings.Contains(html, "<strong>Hello</strong> there"))
	// Output:
	// true
	// true
}

// ExampleParseLog shows how records and roles are read.
func ExampleParseLog() {
	log, err := chat2html.ParseLog([]byte(`[
		{"conversations": [{"from": "gpt", "value": "hi"}, {"from": "tool", "value": "x"}]}
	]`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, rec := range log {
		fmt.Println(rec.Name, rec.RenderableTurns())
		for _, turn := range rec.Turns {
			fmt.Println(turn.Role, turn.Text)
		}
	}
	// Output:
	// GPT_Assistant 1
	// assistant hi
	// other x
}

// ExampleNewConverter_markdown renders turns with the markdown renderer.
func ExampleNewConverter_markdown() {
	conv, err := chat2html.NewConverter(
		chat2html.WithRenderer(chat2html.RendererMarkdown),
		chat2html.WithStyle("dark"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), chat2html.Input{
		Log: []byte(`[{"conversations": [{"from": "human", "value": "- one\n- two"}]}]`),
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(result.HTML), "<li>one</li>"))
	// Output: true
}
