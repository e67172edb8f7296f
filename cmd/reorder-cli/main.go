package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reorder/internal/htmldiff"
	"github.com/goliatone/go-reorder/internal/prompt"
	"github.com/goliatone/go-reorder/internal/script"
	"github.com/goliatone/go-reorder/pkg/dom"
	"github.com/goliatone/go-reorder/pkg/dragdrop"
	"github.com/goliatone/go-reorder/pkg/order"
	"github.com/goliatone/go-reorder/pkg/page"
)

func main() {
	input := flag.String("input", "", "HTML document to reorder")
	listPath := flag.String("list", "", "YAML list to render instead of -input")
	configPath := flag.String("config", "", "controller options (YAML or JSON)")
	scriptPath := flag.String("script", "", "gesture script to replay")
	interactive := flag.Bool("interactive", false, "prompt for gestures")
	record := flag.String("record", "", "save the interactive gestures as a script")
	showDiff := flag.Bool("diff", false, "print a diff instead of the document")
	sanitize := flag.Bool("sanitize", false, "sanitize dropped markup")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	opts := dragdrop.DefaultOptions()
	if *configPath != "" {
		loaded, err := dragdrop.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		opts = loaded
	}
	fns := []dragdrop.OptionFn{dragdrop.WithOptions(opts)}
	if *sanitize {
		fns = append(fns, dragdrop.WithSanitizer(dragdrop.DefaultSanitizer()))
	}

	doc, err := loadDocument(*input, *listPath, opts)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	ctrl, err := dragdrop.New(doc, fns...)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	ctrl.Init()
	before := doc.String()

	if *scriptPath != "" {
		s, err := script.Load(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		results, err := script.Run(ctrl, s)
		if err != nil {
			log.Fatalf("Script failed: %v", err)
		}
		for _, res := range results {
			fmt.Fprintln(os.Stderr, describe(res))
		}
	}

	if *interactive {
		if err := runInteractive(ctrl, *record); err != nil {
			log.Fatalf("Interactive session failed: %v", err)
		}
	}

	records := ctrl.Serializer().Serialize()
	fmt.Fprintf(os.Stderr, "order: %s\n", order.Encode(records))

	after := doc.String()
	result := after
	if *showDiff {
		result = htmldiff.Unified(before, after)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Document written to %s\n", *output)
		return
	}
	fmt.Print(result)
}

func loadDocument(input, listPath string, opts dragdrop.Options) (*dom.Document, error) {
	switch {
	case strings.TrimSpace(listPath) != "":
		list, err := page.LoadList(listPath)
		if err != nil {
			return nil, err
		}
		renderer, err := page.New(page.WithControllerOptions(opts))
		if err != nil {
			return nil, err
		}
		return renderer.Document(list)
	case strings.TrimSpace(input) != "":
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dom.Parse(f)
	default:
		return nil, fmt.Errorf("one of -input or -list is required")
	}
}

func runInteractive(ctrl *dragdrop.Controller, record string) error {
	ctx := context.Background()
	driver := prompt.NewSurveyDriver()
	session, err := prompt.NewSession(driver, ctrl)
	if err != nil {
		return err
	}
	if _, err := session.Run(ctx); err != nil {
		return err
	}
	if record == "" {
		return nil
	}

	save, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: fmt.Sprintf("Save %d gestures to %s?", len(session.Script().Steps), record),
		Default: true,
	})
	if err != nil || !save {
		return err
	}
	data, err := yaml.Marshal(session.Script())
	if err != nil {
		return err
	}
	return os.WriteFile(record, data, 0o644)
}

func describe(res script.StepResult) string {
	switch {
	case res.Refused:
		return fmt.Sprintf("%s: refused", res.Step)
	case res.Err != nil:
		return fmt.Sprintf("%s: %v", res.Step, res.Err)
	case res.Outcome != "":
		return fmt.Sprintf("%s: %s", res.Step, res.Outcome)
	default:
		return res.Step.String()
	}
}
