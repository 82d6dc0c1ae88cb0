package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hamba/avro/v2"
	"github.com/spf13/cobra"

	"github.com/syssam/avrocompat/adapter"
	"github.com/syssam/avrocompat/compiler/gen"
	"github.com/syssam/avrocompat/compiler/load"
)

func newCompileCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compile [flags] <schema file or directory>...",
		Short: "Generate Java classes for the given schemas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			return compile(cmd.Context(), s, args, cmd.OutOrStdout())
		},
	}
}

// compile loads the schemas at paths, generates code and writes it to the
// output directory.
func compile(ctx context.Context, s *settings, paths []string, stdout io.Writer) error {
	schemas, err := loadSchemas(paths)
	if err != nil {
		return err
	}
	a, err := adapter.Open(s.release, s.adapter...)
	if err != nil {
		return err
	}
	files, err := a.Compile(ctx, schemas, s.target)
	if err != nil {
		return err
	}
	if err := gen.WriteFiles(ctx, s.out, files, s.workers); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d files to %s\n", len(files), s.out)
	return nil
}

// loadSchemas loads schema files and every schema file under directories.
func loadSchemas(paths []string) ([]avro.Schema, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := load.Paths(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return load.Files(files...)
}
