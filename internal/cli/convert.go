package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/danmuck/romanapi/internal/roman"
)

type outputOptions struct {
	pretty  bool
	noColor bool
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "indent and colorize JSON output")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "disable colors with --pretty")
}

// conversion is one output line of encode or decode.
type conversion struct {
	Input  string `json:"input"`
	Roman  string `json:"roman,omitempty"`
	Arabic int    `json:"arabic,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

func newEncodeCmd() *cobra.Command {
	out := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "encode <arabic>...",
		Short: "Convert integers in [1,3999] to Roman numerals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := roman.NewConverter()
			return runConversions(cmd, out, args, func(arg string) conversion {
				res := conversion{Input: arg}
				f, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					res.Error = fmt.Sprintf("not a number: %q", arg)
					res.Kind = roman.KindNotAnInteger.String()
					return res
				}
				numeral, err := converter.EncodeFloat(f)
				if err != nil {
					return failed(res, err)
				}
				res.Roman = numeral.String()
				return res
			})
		},
	}
	out.bind(cmd)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	out := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "decode <roman>...",
		Short: "Convert Roman numerals to integers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := roman.NewConverter()
			return runConversions(cmd, out, args, func(arg string) conversion {
				res := conversion{Input: arg}
				value, err := converter.Decode(arg)
				if err != nil {
					return failed(res, err)
				}
				res.Arabic = value.Int()
				return res
			})
		},
	}
	out.bind(cmd)
	return cmd
}

func failed(res conversion, err error) conversion {
	res.Error = err.Error()
	res.Kind = roman.KindOf(err).String()
	return res
}

func runConversions(cmd *cobra.Command, opts *outputOptions, args []string, convert func(string) conversion) error {
	w := outputWriter(cmd.OutOrStdout())
	failures := 0
	for _, arg := range args {
		res := convert(arg)
		if res.Error != "" {
			failures++
		}
		if err := writeJSON(w, opts, res); err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d conversions failed", failures, len(args))
	}
	return nil
}

// outputWriter wraps the real stdout so ANSI colors survive on Windows
// consoles; redirected writers are used as is.
func outputWriter(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return colorable.NewColorable(f)
	}
	return w
}

func writeJSON(w io.Writer, opts *outputOptions, v any) error {
	var (
		data []byte
		err  error
	)
	if opts.pretty {
		f := prettyjson.NewFormatter()
		f.DisabledColor = opts.noColor
		data, err = f.Marshal(v)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
