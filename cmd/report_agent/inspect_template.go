package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/report-engine/internal/deck"
)

var inspectTemplateCmd = &cobra.Command{
	Use:   "inspect-template <template.pptx>",
	Short: "List the named shapes on each slide of a report template",
	Long: `Opens a pptx template and prints every slide's named shapes. Use this to
verify a template edit kept the shape names the populator addresses.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspectTemplate,
}

func init() {
	rootCmd.AddCommand(inspectTemplateCmd)
}

func runInspectTemplate(_ *cobra.Command, args []string) error {
	d, err := deck.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s: %d slides\n", args[0], d.SlideCount())
	for i := 0; i < d.SlideCount(); i++ {
		slide, err := d.Slide(i)
		if err != nil {
			return err
		}
		names := slide.ShapeNames()
		_, _ = fmt.Fprintf(os.Stdout, "\nSlide %d (%d named shapes):\n", i+1, len(names))
		for _, name := range names {
			if x, y, cx, cy, ok := slide.ShapeBounds(name); ok {
				_, _ = fmt.Fprintf(os.Stdout, "  %-32s at (%.2f, %.2f) in, %.2f x %.2f in\n",
					name, deck.ToInches(x), deck.ToInches(y), deck.ToInches(cx), deck.ToInches(cy))
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
	}
	return nil
}
