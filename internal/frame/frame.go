package frame

import (
	"fmt"
	"html"
	"strings"
)

// Button - one clickable choice in a frame.
type Button struct {
	Label  string
	Action string
}

// Response - a frame document: an image plus labeled actions. The image
// itself is rendered by an external service; we only reference it by URL.
type Response struct {
	Title    string
	ImageURL string
	PostURL  string
	Buttons  []Button
}

// RenderHTML - renders the frame as an HTML document of meta tags the
// client understands.
func (that *Response) RenderHTML() string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(that.Title))
	writeMeta(&b, "og:title", that.Title)
	writeMeta(&b, "frame", "v1")
	writeMeta(&b, "frame:image", that.ImageURL)
	writeMeta(&b, "frame:post_url", that.PostURL)

	for i, button := range that.Buttons {
		writeMeta(&b, fmt.Sprintf("frame:button:%d", i+1), button.Label)
		writeMeta(&b, fmt.Sprintf("frame:button:%d:action", i+1), button.Action)
	}

	b.WriteString("</head><body></body></html>\n")

	return b.String()
}

func writeMeta(b *strings.Builder, property, content string) {
	fmt.Fprintf(b, "<meta property=\"%s\" content=\"%s\" />\n", html.EscapeString(property), html.EscapeString(content))
}
