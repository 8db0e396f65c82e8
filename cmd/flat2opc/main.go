package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yuanying/flat2opc/internal/converter"
	"github.com/yuanying/flat2opc/internal/flatopc"
	"github.com/yuanying/flat2opc/internal/mimetypes"
)

type cliOptions struct {
	InputPath  string
	OutputPath string
	Defaults   map[string]string
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flat2opc <input.xml>",
		Short: "Convert Flat OPC XML documents to OOXML packages",
		Long: `flat2opc converts a Flat OPC document (the single-XML-file
serialization of an OPC package, as written by Word's "XML Document"
format) into a standard OOXML package: a zip archive with one entry per
part plus [Content_Types].xml.

Pass "-" as the input to read from stdin. When --output is omitted the
extension is inferred from the package's main document part (.docx,
.xlsx, .pptx, or .zip).`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, args)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: input name with inferred extension)")
	cmd.Flags().String("types", "", "YAML file mapping file extensions to default content types")
	return cmd
}

func readCLIOptions(cmd *cobra.Command, args []string) (*cliOptions, error) {
	opts := &cliOptions{InputPath: args[0]}
	opts.OutputPath, _ = cmd.Flags().GetString("output")

	typesPath, _ := cmd.Flags().GetString("types")
	if typesPath != "" {
		defaults, err := mimetypes.Load(typesPath)
		if err != nil {
			return nil, err
		}
		opts.Defaults = defaults
	}
	return opts, nil
}

func run(opts *cliOptions) error {
	var src flatopc.Source
	if opts.InputPath == "-" {
		src = flatopc.FromReader(os.Stdin)
	} else {
		src = flatopc.FromFile(opts.InputPath)
	}

	p := converter.NewPipeline(converter.Options{Defaults: opts.Defaults})

	outputPath := opts.OutputPath
	if outputPath != "" {
		log.Printf("Converting: %s -> %s", opts.InputPath, outputPath)
		if err := p.Convert(src, outputPath); err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
	} else {
		// No explicit output: convert in memory first so the extension
		// can be inferred from the finished package.
		pkg, err := p.ConvertBytes(src)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		outputPath = defaultOutputPath(opts.InputPath, converter.OutputExt(pkg))
		log.Printf("Converting: %s -> %s", opts.InputPath, outputPath)
		if err := os.WriteFile(outputPath, pkg, 0o644); err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
	}

	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "Done: %s\n", outputPath)
	return nil
}

func defaultOutputPath(inputPath, ext string) string {
	if inputPath == "-" {
		return "package" + ext
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
