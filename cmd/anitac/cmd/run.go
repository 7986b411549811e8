package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arithjit/anita/internal/errors"
	"github.com/arithjit/anita/internal/numeric"
	"github.com/arithjit/anita/jit"
	"github.com/spf13/cobra"
)

var (
	runArgs   []string
	runVector bool
	runTrace  bool
)

var runCmd = &cobra.Command{
	Use:   "run <expression>",
	Short: "Compile and evaluate an expression",
	Long: `Compile an expression and immediately call it with the given
argument values.

Examples:
  # Scalar element type (the default)
  anitac run --arg x=3 --arg y=4 "x + y * 2"

  # 4-lane vector element type; each value is "a,b,c,d"
  anitac run --vector --arg x=1,2,3,4 "x + x"`,
	Args: cobra.ExactArgs(1),
	RunE: runExpression,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayVar(&runArgs, "arg", nil, "bind a parameter as name=value (repeatable)")
	runCmd.Flags().BoolVar(&runVector, "vector", false, "use the 4-lane vector element type instead of scalar")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace compilation to stderr")
}

func runExpression(_ *cobra.Command, args []string) error {
	source := args[0]

	names := make([]string, len(runArgs))
	rawValues := make([]string, len(runArgs))
	for i, kv := range runArgs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--arg %q: expected name=value", kv)
		}
		names[i] = name
		rawValues[i] = value
	}

	if runVector {
		return runVectorExpr(source, names, rawValues)
	}
	return runScalarExpr(source, names, rawValues)
}

// runScalarExpr and runVectorExpr call the low-level JIT.Compile directly
// rather than the Handle-based convenience builder: the CLI's argument
// count is only known at runtime, while Handle's F type parameter fixes a
// function pointer's arity at compile time (spec §6.3 assumes the caller
// already knows the shape it wants).
func runScalarExpr(source string, names, rawValues []string) error {
	values := make([]float32, len(rawValues))
	for i, raw := range rawValues {
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("--arg %s: %w", names[i], err)
		}
		values[i] = float32(v)
	}

	var opts []jit.Option[float32]
	if runTrace {
		opts = append(opts, jit.WithTrace[float32](os.Stderr))
	}

	j := jit.New[float32](numeric.Scalar{}, opts...)
	fn, err := j.Compile(source, names)
	if err != nil {
		return reportCompileError(source, err)
	}
	defer j.Dissolve().FreeMemory()

	fmt.Println(fn(values))
	return nil
}

func runVectorExpr(source string, names, rawValues []string) error {
	values := make([][4]float32, len(rawValues))
	for i, raw := range rawValues {
		lanes := strings.Split(raw, ",")
		if len(lanes) != 4 {
			return fmt.Errorf("--arg %s: vector values need exactly 4 comma-separated lanes", names[i])
		}
		var v [4]float32
		for lane, s := range lanes {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return fmt.Errorf("--arg %s: %w", names[i], err)
			}
			v[lane] = float32(f)
		}
		values[i] = v
	}

	var opts []jit.Option[[4]float32]
	if runTrace {
		opts = append(opts, jit.WithTrace[[4]float32](os.Stderr))
	}

	j := jit.New[[4]float32](numeric.Vector4{}, opts...)
	fn, err := j.Compile(source, names)
	if err != nil {
		return reportCompileError(source, err)
	}
	defer j.Dissolve().FreeMemory()

	fmt.Println(fn(values))
	return nil
}

func reportCompileError(source string, err error) error {
	if pe, ok := err.(*errors.ParseError); ok {
		return fmt.Errorf("\n%s", pe.Format(source))
	}
	return err
}
