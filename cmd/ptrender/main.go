// Command ptrender renders Portable Text documents and converts other
// document formats into Portable Text.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/richtext-labs/ptrender/internal/parser"
	"github.com/richtext-labs/ptrender/internal/ptext"
	"github.com/richtext-labs/ptrender/internal/render"
)

var rootCmd = &cobra.Command{
	Use:           "ptrender",
	Short:         "Render and convert Portable Text documents",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var renderFormat string

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a Portable Text JSON document",
	Long:  `Reads a Portable Text JSON document and writes rendered output to stdout. With no file argument, reads from stdin.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a document (md, html, docx, pdf, txt) to Portable Text JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "term", "Output format: html, text, or term")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	var renderer render.Renderer
	switch renderFormat {
	case "html":
		renderer = render.NewHTMLRenderer(render.NewConfig())
	case "text":
		renderer = render.NewPlainRenderer()
	case "term":
		renderer = render.NewTermRenderer(render.NewConfig())
	default:
		return fmt.Errorf("unknown format %q", renderFormat)
	}

	var input io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return err
	}
	return render.Document(os.Stdout, string(data), renderer, nil)
}

func runConvert(cmd *cobra.Command, args []string) error {
	filename := args[0]
	p, err := parser.ForFile(filename)
	if err != nil {
		return err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = true
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := p.Parse(f, filename)
	if err != nil {
		return err
	}
	return ptext.Encode(os.Stdout, doc)
}
