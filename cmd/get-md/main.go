package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/owayo/get-md/internal/browser"
	"github.com/owayo/get-md/internal/config"
	"github.com/owayo/get-md/internal/convert"
	"github.com/owayo/get-md/internal/markdown"
	"github.com/owayo/get-md/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "get-md <url>",
	Short: "Fetch a URL in a browser and convert it to Markdown",
	Long: `Fetch a URL in a headless browser and convert selected elements to Markdown.

Uses Chrome/Chromium installed on the system and supports
JavaScript-rendered pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringArrayP("selector", "s", nil, "CSS selector for elements to convert (repeatable; defaults to body)")
	rootCmd.Flags().StringP("output", "o", "", "Output file path (defaults to stdout)")
	rootCmd.Flags().String("chrome-path", "", "Path to Chrome binary (auto-detected if omitted)")
	rootCmd.Flags().IntP("wait", "w", 2, "Extra wait in seconds after page load for JS rendering")
	rootCmd.Flags().IntP("timeout", "t", 60, "Page load timeout in seconds")
	rootCmd.Flags().Bool("no-headless", false, "Show the browser window (for debugging)")
	rootCmd.Flags().Bool("no-cache", false, "Disable browser cache (always fetch latest content)")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress output")

	viper.BindPFlag("wait", rootCmd.Flags().Lookup("wait"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("chrome_path", rootCmd.Flags().Lookup("chrome-path"))
	viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	pageURL := args[0]

	selectors, _ := cmd.Flags().GetStringArray("selector")
	if len(selectors) == 0 {
		selectors = []string{"body"}
	}

	output, _ := cmd.Flags().GetString("output")
	noHeadless, _ := cmd.Flags().GetBool("no-headless")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	waitSecs := config.GetWait()
	timeout := time.Duration(config.GetTimeout()) * time.Second

	progress := ui.New(!config.GetQuiet())
	defer progress.Close()

	// Launch browser
	progress.Spinner("Launching Chrome...")
	session, err := browser.Launch(browser.Options{
		ChromePath:   config.GetChromePath(),
		Headless:     !noHeadless,
		DisableCache: noCache,
		Timeout:      timeout,
	})
	if err != nil {
		progress.FinishAndClear()
		return err
	}
	defer session.Close()
	progress.Finish("Chrome launched")

	// Navigate to page
	progress.Spinner(fmt.Sprintf("Loading page: %s", pageURL))
	if err := session.Navigate(pageURL); err != nil {
		progress.FinishAndClear()
		return err
	}

	// Additional wait for JS rendering to complete
	if waitSecs > 0 {
		progress.SetMessage(fmt.Sprintf("Waiting for JS rendering (%ds)...", waitSecs))
		time.Sleep(time.Duration(waitSecs) * time.Second)
	}
	progress.Finish("Page loaded")

	// Extract HTML for elements matching the selectors
	progress.Spinner("Extracting HTML elements...")
	var fragments []string
	for _, selector := range selectors {
		progress.SetMessage(fmt.Sprintf("Extracting selector '%s'...", selector))

		html, err := session.ExtractHTML(selector)
		if err != nil {
			progress.FinishAndClear()
			return err
		}
		if html == "" {
			progress.Warn(fmt.Sprintf("Warning: no elements matched selector '%s'", selector))
			continue
		}
		fragments = append(fragments, html)
	}
	progress.FinishAndClear()

	if len(fragments) == 0 {
		return fmt.Errorf("no elements matched the specified selectors")
	}

	// Convert HTML to Markdown
	progress.Spinner("Converting to Markdown...")
	conv := convert.NewConverter()
	parts := make([]string, 0, len(fragments))
	for _, html := range fragments {
		md, err := convert.ToMarkdown(conv, html)
		if err != nil {
			progress.FinishAndClear()
			return err
		}
		parts = append(parts, md)
	}

	md := markdown.Compact(strings.Join(parts, "\n\n---\n\n"))
	md = markdown.ResolveURLs(md, pageURL)
	progress.Finish("Converted to Markdown")

	if err := writeOutput(output, md); err != nil {
		return err
	}

	// Show completion with URL only after output succeeds
	progress.Complete(pageURL)
	return nil
}

// writeOutput writes the Markdown to path, or stdout when path is empty.
// File output always ends with a newline; stdout output is left as-is.
func writeOutput(path, md string) error {
	if path == "" {
		if _, err := os.Stdout.WriteString(md); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
