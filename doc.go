// Package chat2html converts conversation logs to static HTML documents.
//
// # Quick Start
//
// Create a converter, convert a log, and close when done:
//
//	conv, err := chat2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	data, _ := os.ReadFile("chat.json")
//	result, err := conv.Convert(ctx, chat2html.Input{
//	    Log:          data,
//	    Title:        "chat",
//	    IncludeImage: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chat.html", result.HTML, 0644)
//
// # Input Format
//
// A log is a JSON array of character records:
//
//	[
//	  {
//	    "Character": "Ada",
//	    "conversations": [
//	      {"from": "system", "value": "You are Ada."},
//	      {"from": "human", "value": "Hello"},
//	      {"from": "gpt", "value": "**Hi!** See [docs](https://go.dev)"}
//	    ]
//	  }
//	]
//
// Records without a Character are named GPT_Assistant. Turns whose "from"
// is not gpt, human or system, and turns with an empty value, are skipped.
//
// # Rendering
//
// Each record becomes an "Entry N: NAME" heading followed by one block per
// turn. Turn text goes through a small inline markup pass by default:
// **strong**, *highlight*, newlines to paragraphs, ```fenced``` blocks to
// <pre>, and [label](http...) links. Turn text is not HTML-escaped.
// WithRenderer(RendererMarkdown) swaps in a goldmark renderer with syntax
// highlighting.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := chat2html.NewConverter(
//	    chat2html.WithStyle("dark"),
//	    chat2html.WithRenderer(chat2html.RendererMarkdown),
//	    chat2html.WithAssetPath("/path/to/custom/assets"),
//	    chat2html.WithTimeout(time.Minute),
//	)
//
// Set Input.PDF to also render the document through headless Chrome.
//
// # Custom Assets
//
// Override built-in styles and the document template using AssetLoader:
//
//	loader, err := chat2html.NewAssetLoader("/path/to/assets")
//	conv, err := chat2html.NewConverter(chat2html.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── document.html
//
// Missing assets fall back to the embedded defaults.
package chat2html
