package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"fortio.org/log"

	"lino/config"
	"lino/interpreter"
	"lino/lexer"
	"lino/repl"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

type (
	CommandFunc func(args []string, in io.Reader, out io.Writer) int

	FlagInfo struct {
		Name        string
		Description string
	}

	CommandInfo struct {
		Description string
		Function    CommandFunc
		Flags       []FlagInfo
	}
)

var (
	flagFile = FlagInfo{
		Name:        "-f",
		Description: "script file path, stdin when omitted or -",
	}
	flagConfig = FlagInfo{
		Name:        "-c",
		Description: "config file path, " + config.DefaultFile + " when omitted",
	}
	flagVerbose = FlagInfo{
		Name:        "-v",
		Description: "log every dispatched instruction",
	}
)

var commands map[string]CommandInfo

func init() {
	commands = map[string]CommandInfo{
		"run": {
			Description: "Executes a script and prints what it computes",
			Function:    Run,
			Flags:       []FlagInfo{flagFile, flagConfig, flagVerbose},
		},
		"lex": {
			Description: "Prints the tokens of every line of a script",
			Function:    Lex,
			Flags:       []FlagInfo{flagFile},
		},
		"blocks": {
			Description: "Prints every while/if block with the line of its end",
			Function:    Blocks,
			Flags:       []FlagInfo{flagFile},
		},
		"repl": {
			Description: "Starts an interactive session",
			Function:    Repl,
			Flags:       []FlagInfo{flagConfig, flagVerbose},
		},
		"help": {
			Description: "Prints the usage of all commands",
			Function:    Help,
			Flags:       []FlagInfo{},
		},
	}
}

type options struct {
	file    string
	config  string
	verbose bool
}

func parseFlags(name string, args []string, out io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&opts.file, "f", "", flagFile.Description)
	fs.StringVar(&opts.config, "c", "", flagConfig.Description)
	fs.BoolVar(&opts.verbose, "v", false, flagVerbose.Description)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case fs.NArg() == 1 && opts.file == "":
		opts.file = fs.Arg(0)
	case fs.NArg() > 0:
		return nil, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	return opts, nil
}

func setup(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return nil, err
	}
	cfg.Apply()
	if opts.verbose {
		log.SetLogLevel(log.Verbose)
	}
	return cfg, nil
}

func readSource(path string, in io.Reader) ([]string, error) {
	if path == "" || path == "-" {
		return interpreter.ReadLines(in)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return interpreter.ReadLines(file)
}

func Help(args []string, in io.Reader, out io.Writer) int {
	if len(args) < 1 {
		// show the whole help catalog
		printResult := "\n\033[1;35mSupported Commands:\033[0m\n\n"

		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			printResult += describe(name, commands[name], "  ")
			printResult += "\n"
		}

		fmt.Fprintln(out, printResult)
		return ExitOK
	}

	// print the help of the specified commands
	cmdName := args[0]

	// check if command is supported or not
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintln(out, "ERROR: provided command, isn't supported")
		return ExitUsage
	}

	printResult := "\n\033[1;35mCommand:\033[0m\n"
	printResult += describe(cmdName, cmd, "")
	if len(cmd.Flags) == 0 {
		printResult += "\033[0;37m(No flags available)\033[0m\n"
	}

	fmt.Fprintln(out, printResult)
	return ExitOK
}

func describe(name string, cmd CommandInfo, indent string) string {
	text := fmt.Sprintf("%s\033[1;36m%v\033[0m\n", indent, name)
	text += fmt.Sprintf("%s  \033[1;37mDescription:\033[0m \033[0;37m%v\033[0m\n", indent, cmd.Description)

	if len(cmd.Flags) > 0 {
		text += fmt.Sprintf("%s  \033[1;37mFlags:\033[0m\n", indent)
		for _, flag := range cmd.Flags {
			text += fmt.Sprintf("%s    \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", indent, flag.Name, flag.Description)
		}
	}
	return text
}

func Run(args []string, in io.Reader, out io.Writer) int {
	opts, err := parseFlags("run", args, out)
	if err != nil {
		return ExitUsage
	}

	cfg, err := setup(opts)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	lines, err := readSource(opts.file, in)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	i := interpreter.NewInterpreter(nil, out, interpreter.WithMaxSteps(cfg.MaxSteps))
	if err := i.RunLines(lines); err != nil {
		log.Errf("%s: %v", sourceName(opts.file), err)
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	if log.LogDebug() {
		for _, b := range i.Store().Snapshot() {
			log.Debugf("%s = %s", b.Name, b.Value.Inspect())
		}
	}
	return ExitOK
}

func Lex(args []string, in io.Reader, out io.Writer) int {
	opts, err := parseFlags("lex", args, out)
	if err != nil {
		return ExitUsage
	}

	lines, err := readSource(opts.file, in)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	for _, inst := range lexer.TokenizeLines(lines, 1) {
		fmt.Fprintf(out, "%d: %q\n", inst.Line, inst.Tokens)
	}
	return ExitOK
}

func Blocks(args []string, in io.Reader, out io.Writer) int {
	opts, err := parseFlags("blocks", args, out)
	if err != nil {
		return ExitUsage
	}

	lines, err := readSource(opts.file, in)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	p, err := interpreter.Prepare(lines, 1)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	for _, pair := range p.Jumps.Pairs() {
		opener := p.Instructions[pair.Opener]
		end := p.Instructions[pair.End]
		fmt.Fprintf(out, "%s %d -> %d\n", opener.Lead(), opener.Line, end.Line)
	}
	return ExitOK
}

func Repl(args []string, in io.Reader, out io.Writer) int {
	opts, err := parseFlags("repl", args, out)
	if err != nil {
		return ExitUsage
	}

	cfg, err := setup(opts)
	if err != nil {
		fmt.Fprintln(out, err)
		return ExitFailure
	}

	repl.Start(in, out, cfg)
	return ExitOK
}

func sourceName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// Main runs the command named by args[0].
func Main(args []string, in io.Reader, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, "ERROR: at least provide command name to kick off the cli")
		return ExitUsage
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(out, "ERROR: unknown command %v, check help for manual.\n", name)
		return ExitUsage
	}

	code := cmd.Function(args[1:], in, out)
	if code == ExitUsage {
		log.LogVf("%s exited with a usage error", name)
	}
	return code
}

func Execute() int {
	return Main(os.Args[1:], os.Stdin, os.Stdout)
}
