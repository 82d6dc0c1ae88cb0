// Command avrocompat generates Java classes from Avro schemas with one
// release's avro-tools and rewrites them to run on older releases.
//
// Usage:
//
//	avrocompat compile --release 1.7 --target 1.4 --out gen-src schemas/
//	avrocompat watch --config avrocompat.yaml schemas/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	// Release adapters register themselves with the adapter package.
	_ "github.com/syssam/avrocompat/adapter/avro14"
	_ "github.com/syssam/avrocompat/adapter/avro15"
	_ "github.com/syssam/avrocompat/adapter/avro16"
	_ "github.com/syssam/avrocompat/adapter/avro17"
	_ "github.com/syssam/avrocompat/adapter/avro18"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
