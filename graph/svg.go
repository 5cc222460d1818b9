package graph

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// WriteSVG renders a plan as a standalone SVG document: edges first, then
// nodes, then labels below their nodes.
func WriteSVG(w io.Writer, p RenderPlan) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(p.Width), num(p.Height), num(p.Width), num(p.Height))
	bw.WriteString(`<defs><filter id="glow"><feGaussianBlur stdDeviation="2.5"/>` +
		`<feMerge><feMergeNode/><feMergeNode in="SourceGraphic"/></feMerge></filter></defs>` + "\n")
	bw.WriteString(`<rect width="100%" height="100%" fill="#0f172a"/>` + "\n")

	bw.WriteString("<g class=\"edges\">\n")
	for _, e := range p.Edges {
		color := colorful.Hsl(float64(e.Hue), 0.7, 0.6).Hex()
		fmt.Fprintf(bw, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
			num(e.X1), num(e.Y1), num(e.X2), num(e.Y2), color, num(e.Opacity), num(e.Width))
	}
	bw.WriteString("</g>\n<g class=\"nodes\">\n")

	for _, n := range p.Nodes {
		filter := ""
		if n.Glow {
			filter = ` filter="url(#glow)"`
		}
		fmt.Fprintf(bw, `<circle cx="%s" cy="%s" r="%s" fill="%s"%s><title>%s</title></circle>`+"\n",
			num(n.X), num(n.Y), num(n.Radius), n.Fill, filter, escape(n.Title))
		if n.ShowLabel {
			fmt.Fprintf(bw, `<text x="%s" y="%s" fill="white" font-family="sans-serif" font-size="9" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
				num(n.X), num(n.Y+n.Radius+12), escape(n.Label))
		}
	}
	bw.WriteString("</g>\n</svg>\n")

	return bw.Flush()
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
