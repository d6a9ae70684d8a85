package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/jcorbin/libb/internal/linkage"
	"github.com/jcorbin/libb/internal/panicerr"
	"github.com/jcorbin/libb/internal/wasmhost"
)

// newRootCmd builds the command tree; finalize collects cleanups that must
// run once the chosen command is done.
func newRootCmd(finalize func(func())) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "libb",
		Short:         "Runtime support for B programs.",
		Long:          "Provides the B primitives (putchar, putnumb, getchar, putstr, exit, char, lchar) to compiled programs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			syncLogs := setupLogging(cmd.ErrOrStderr(), GetFlag(cmd, "verbose"))
			finalize(syncLogs)

			timeout, err := cmd.Flags().GetDuration("timeout")
			if err != nil {
				return err
			}
			if timeout != 0 {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				finalize(cancel)
				cmd.SetContext(ctx)
			}
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run PROGRAM.wasm",
		Short: "Run a B program compiled to WebAssembly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd, WithScheme(linkage.WasmScheme()))
			if err != nil {
				return err
			}
			defer rt.Close()
			if err := rt.RunWasm(cmd.Context(), code); err != nil {
				return err
			}
			return rt.Close()
		},
	}

	callCmd := &cobra.Command{
		Use:   "call SYMBOL [ARG...]",
		Short: "Call one entry point with literal arguments.",
		Long: `Call one entry point with literal arguments, printing its result.

The entry point may be named by its symbol or by its plain B name. Arguments
may be integers (a leading 0 means octal), character constants like 'hi',
strings like "hello*n" which are placed in memory and passed by address, or
control mnemonics like <NL>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ent, err := rt.Resolve(args[0])
			if err != nil {
				return err
			}
			words, err := newLiterals(rt).parseAll(args[1:])
			if err != nil {
				return err
			}
			r, err := rt.Invoke(cmd.Context(), ent.Symbol, words...)
			if err != nil {
				return err
			}
			if err := rt.Close(); err != nil {
				return err
			}
			if GetFlag(cmd, "result") {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v = %v\n", ent.Symbol, r)
			}
			if GetFlag(cmd, "dump") {
				rt.Dump(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	symbolsCmd := &cobra.Command{
		Use:   "symbols",
		Short: "List every entry point with its word address.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := New()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDR\tSYMBOL\tARITY")
			for _, ent := range rt.Entries() {
				fmt.Fprintf(tw, "%v\t%v\t%v\n", ent.Addr, ent.Symbol, ent.Arity)
			}
			return tw.Flush()
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "trace every primitive call")
	rootCmd.PersistentFlags().Duration("timeout", 0, "specify a time limit")
	rootCmd.PersistentFlags().Uint("mem-limit", 0, "limit the highest addressable byte")
	rootCmd.PersistentFlags().StringArray("input", nil, "read console input from a file instead of stdin (repeatable)")
	callCmd.Flags().Bool("result", false, "print the call's result to stderr")
	callCmd.Flags().Bool("dump", false, "dump entry points and memory to stderr after the call")
	rootCmd.AddCommand(runCmd, callCmd, symbolsCmd)
	return rootCmd
}

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

func newRuntime(cmd *cobra.Command, extra ...Option) (*Runtime, error) {
	flags := cmd.Flags()
	memLimit, err := flags.GetUint("mem-limit")
	if err != nil {
		return nil, err
	}
	inputs, err := flags.GetStringArray("input")
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	opts := []Option{
		WithOutput(out),
		WithMemLimit(memLimit),
		WithInteractive(isTerminal(out)),
	}
	if len(inputs) == 0 {
		opts = append(opts, WithInput(cmd.InOrStdin()))
	}
	for _, name := range inputs {
		f, err := os.Open(name)
		if err != nil {
			New(opts...).Close()
			return nil, err
		}
		opts = append(opts, WithInput(f), WithCloser(f))
	}
	if GetFlag(cmd, "verbose") {
		opts = append(opts, WithLogf(zap.S().Debugf))
	}
	return New(append(opts, extra...)...), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// setupLogging points the global zap logger, and the wasm host's, at w.
func setupLogging(w io.Writer, verbose bool) func() {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level.SetLevel(zap.DebugLevel)
	}
	logger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	), zap.Development())
	undo := zap.ReplaceGlobals(logger)
	wasmhost.SetLogger(logger)
	return func() {
		_ = logger.Sync()
		wasmhost.SetLogger(zap.NewNop())
		undo()
	}
}

// execute runs one command line against the given standard streams.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cleanups []func()
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	rootCmd := newRootCmd(func(f func()) { cleanups = append(cleanups, f) })
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR: %v\n", err)
	if panicerr.IsPanic(err) {
		fmt.Fprintf(w, "%s", panicerr.PanicStack(err))
	}
}

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
