package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hzsweers/apollo-android/internal/ir"
	"github.com/hzsweers/apollo-android/internal/otel"
	"github.com/hzsweers/apollo-android/internal/schema"
)

const rootUsage = `graphqlgen — GraphQL document parser and IR builder

USAGE:
  graphqlgen <command> [flags]

COMMANDS:
  compile   Parse a GraphQL document set against a schema and print the IR
  help      Show help for any command
`

const compileUsage = `compile FLAGS:
  -schema <file>       GraphQL SDL schema file (required)
  -documents <dir>     Root directory of .graphql operation/fragment files (required)
  -out <file>          Write the CodeGenerationIR JSON to file (default: stdout)
  -otel.endpoint <addr> OTLP collector endpoint
  -otel.service <name>  OpenTelemetry service name (default: graphqlgen)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphqlgen", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "compile":
		return cmdCompile(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "compile":
		fmt.Print(compileUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdCompile(args []string) error {
	schemaFile := ""
	documentsDir := ""
	outFile := ""
	otelEndpoint := ""
	otelService := "graphqlgen"

	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL schema file")
	fs.StringVar(&documentsDir, "documents", documentsDir, "Root directory of .graphql documents")
	fs.StringVar(&outFile, "out", outFile, "Write the CodeGenerationIR JSON to file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, compileUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, compileUsage)
		return fmt.Errorf("-schema is required")
	}
	if documentsDir == "" {
		fmt.Fprint(os.Stderr, compileUsage)
		return fmt.Errorf("-documents is required")
	}

	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(schemaFile, string(sdl))
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}

	result, err := ir.Load(context.Background(), sch, documentsDir)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal IR: %w", err)
	}
	out = append(out, '\n')

	if outFile == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outFile, out, 0644)
}
