package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spicery/nutmeg-mask/pkg/mask"
	"gopkg.in/yaml.v3"
)

const (
	version = "0.1.0"
	usage   = `nutmeg-mask - Mask and unmask text against declarative patterns

Usage:
  nutmeg-mask [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file, one value per line (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --mask <pattern>      Pattern mask, e.g. "##//##//####"
  --reverse             Match the pattern from the right
  --rules <file>        YAML rules file for custom placeholders (optional)
  --make-rules          Generate default rules YAML to stdout
  --number              Use the number mask instead of a pattern
  --decimals <n>        Fraction digits for --number (default 2)
  --group <char>        Group delimiter for --number (default " ")
  --decimal <char>      Decimal delimiter for --number (default ",")
  --group-size <list>   Group sizes for --number, "3" or "3,2" (default "3")
  --max <n>             Upper bound whose digit count caps integer digits
  --signed              Keep a leading minus sign in --number mode
  --pad                 Zero-pad fractions in --number mode
  --config <file>       YAML preset file (defaults to $NUTMEG_MASK_CONFIG)
  --preset <name>       Preset from the preset file
  --unmask              Unmask instead of mask
  --tokens              Print the compiled pattern tokens and exit
  --format <fmt>        Output format: json (default) or yaml
  --verbose             Log diagnostics to stderr

Examples:
  echo 07011985 | nutmeg-mask --mask "##//##//####"            # 07/01/1985
  echo 07/01/1985 | nutmeg-mask --mask "##//##//####" --unmask # 07011985
  echo 4000 | nutmeg-mask --number --pad                       # 4 000,00
  nutmeg-mask --config masks.yaml --preset phone --input numbers.txt
  nutmeg-mask --mask "CC?C-###/?C" --tokens                    # Dump tokens

The tool outputs one JSON object per input line.
See docs/files.md for the rules and preset file formats.
`
)

// options collects the parsed command-line flags.
type options struct {
	inputFile, outputFile string
	pattern, rulesFile    string
	reverse               bool
	number, signed, pad   bool
	decimals              int
	group, decimal        string
	groupSize             string
	max                   int64
	configFile, preset    string
	unmask, tokens        bool
	format                string
}

// result is one output record.
type result struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

func main() {
	var showHelp, showVersion, makeRules, verbose bool
	var opts options

	defaults := mask.DefaultNumberFormat()

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate default rules YAML")
	flag.BoolVar(&verbose, "verbose", false, "Log diagnostics")
	flag.StringVar(&opts.inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&opts.outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&opts.pattern, "mask", "", "Pattern mask")
	flag.BoolVar(&opts.reverse, "reverse", false, "Match from the right")
	flag.StringVar(&opts.rulesFile, "rules", "", "YAML rules file (optional)")
	flag.BoolVar(&opts.number, "number", false, "Use the number mask")
	flag.IntVar(&opts.decimals, "decimals", defaults.Decimals, "Fraction digits")
	flag.StringVar(&opts.group, "group", defaults.Group, "Group delimiter")
	flag.StringVar(&opts.decimal, "decimal", defaults.Decimal, "Decimal delimiter")
	flag.StringVar(&opts.groupSize, "group-size", "3", "Group sizes")
	flag.Int64Var(&opts.max, "max", 0, "Integer digit cap")
	flag.BoolVar(&opts.signed, "signed", false, "Keep minus sign")
	flag.BoolVar(&opts.pad, "pad", false, "Zero-pad fractions")
	flag.StringVar(&opts.configFile, "config", "", "YAML preset file")
	flag.StringVar(&opts.preset, "preset", "", "Preset name")
	flag.BoolVar(&opts.unmask, "unmask", false, "Unmask instead of mask")
	flag.BoolVar(&opts.tokens, "tokens", false, "Print compiled tokens")
	flag.StringVar(&opts.format, "format", "json", "Output format")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("nutmeg-mask version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		if err := generateDefaultRules(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default rules: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
	if opts.configFile == "" {
		opts.configFile = os.Getenv("NUTMEG_MASK_CONFIG")
	}

	masker, err := buildMasker(&opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Prepare output destination
	var output io.Writer
	var outputCloser io.Closer

	if opts.outputFile == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(opts.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", opts.outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	if opts.tokens {
		err = writeTokens(output, masker)
	} else {
		err = processInput(&opts, masker, output)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Close output file if we opened one
	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", opts.outputFile, err)
			os.Exit(1)
		}
	}
}

// buildMasker selects a preset, a number mask or a pattern mask from the
// flags, in that order.
func buildMasker(opts *options) (mask.Masker, error) {
	if opts.preset != "" {
		if opts.configFile == "" {
			return nil, fmt.Errorf("--preset needs --config or NUTMEG_MASK_CONFIG")
		}
		presets, err := mask.LoadPresetFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		slog.Debug("Loaded presets", "path", opts.configFile, "names", presets.Names())
		return presets.Masker(opts.preset)
	}

	if opts.number {
		groupSize, err := parseGroupSize(opts.groupSize)
		if err != nil {
			return nil, err
		}
		return mask.NewNumberMask(mask.NumberConfig{
			Format: mask.NumberFormat{
				Decimals:  opts.decimals,
				Group:     opts.group,
				Decimal:   opts.decimal,
				GroupSize: groupSize,
				Signed:    opts.signed,
			},
			Max: opts.max,
		})
	}

	if opts.pattern == "" {
		return nil, fmt.Errorf("one of --mask, --number or --preset is required")
	}

	rules := mask.DefaultRules()
	if opts.rulesFile != "" {
		file, err := mask.LoadRulesFile(opts.rulesFile)
		if err != nil {
			return nil, err
		}
		rules, err = mask.ApplyRulesToDefaults(file)
		if err != nil {
			return nil, fmt.Errorf("applying rules: %w", err)
		}
		slog.Debug("Loaded rules", "path", opts.rulesFile, "count", len(file.Rules))
	}

	return mask.Compile(mask.Config{Pattern: opts.pattern, Rules: rules, Reverse: opts.reverse})
}

// parseGroupSize parses "3" or "3,2".
func parseGroupSize(text string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(text, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid --group-size %q: %w", text, err)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// processInput transforms every input line and writes the results.
func processInput(opts *options, masker mask.Masker, output io.Writer) error {
	var input io.Reader = os.Stdin
	if opts.inputFile != "" {
		file, err := os.Open(opts.inputFile)
		if err != nil {
			return fmt.Errorf("reading file '%s': %w", opts.inputFile, err)
		}
		defer file.Close()
		input = file
	}

	transform := selectTransform(opts, masker)

	var results []result
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := scanner.Text()
		results = append(results, result{Input: line, Output: transform(line)})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	slog.Debug("Processed input", "lines", len(results), "unmask", opts.unmask)

	return writeResults(output, opts.format, results)
}

// selectTransform picks Mask, Unmask or the padded number display.
func selectTransform(opts *options, masker mask.Masker) func(string) string {
	if opts.unmask {
		return masker.Unmask
	}
	if number, ok := masker.(*mask.NumberMask); ok && opts.pad {
		return number.Display
	}
	return masker.Mask
}

func writeResults(output io.Writer, format string, results []result) error {
	switch format {
	case "json":
		// One JSON object per line
		for _, r := range results {
			jsonBytes, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("JSON encoding error: %w", err)
			}
			fmt.Fprintln(output, string(jsonBytes))
		}
		return nil
	case "yaml":
		yamlBytes, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("YAML encoding error: %w", err)
		}
		_, err = output.Write(yamlBytes)
		return err
	default:
		return fmt.Errorf("unknown --format %q", format)
	}
}

// writeTokens outputs the compiled tokens as JSON, one per line.
func writeTokens(output io.Writer, masker mask.Masker) error {
	m, ok := masker.(*mask.StringMask)
	if !ok {
		return fmt.Errorf("--tokens needs a pattern mask")
	}
	for _, token := range m.Tokens() {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return fmt.Errorf("JSON encoding error: %w", err)
		}
		fmt.Fprintln(output, string(jsonBytes))
	}
	return nil
}

// generateDefaultRules outputs the default rules in YAML format to stdout.
func generateDefaultRules() error {
	yamlBytes, err := yaml.Marshal(mask.RulesToFile(mask.DefaultRules()))
	if err != nil {
		return fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}

	fmt.Print(string(yamlBytes))
	return nil
}
