package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dzjyyds666/aqtoml/parse"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find   string `json:"find"`   // 查找的key, 例如 fruit[1].name
	Query  string `json:"query"`  // expr 表达式, 顶层key作为变量
	Input  string `json:"input"`  // 输入文件路径, 为空或 - 时读取标准输入
	Output string `json:"output"` // 输出文件地址, 为空时写到标准输出
	Format string `json:"format"` // 输出格式 json|yaml
	Indent int    `json:"indent"` // 缩进空格数
}

var params *TomlParams

var tomlCmd = &cobra.Command{
	Use:   "toml [file]",
	Short: "toml parse tools",
	Long:  "Decode a TOML document and print it, or the value selected by --find or --query, as JSON or YAML.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  tomlRun,
}

var diffFormat string

var tomlDiffCmd = &cobra.Command{
	Use:   "diff <a.toml> <b.toml>",
	Short: "diff two toml documents by decoded content",
	Args:  cobra.ExactArgs(2),
	RunE:  tomlDiffRun,
}

func init() {
	params = &TomlParams{}
	tomlCmd.Flags().StringVarP(&params.Find, "find", "f", "", "path of the value to print, e.g. fruit[1].name")
	tomlCmd.Flags().StringVarP(&params.Query, "query", "q", "", "expression evaluated against the document")
	tomlCmd.Flags().StringVarP(&params.Input, "input", "i", "", "input file path")
	tomlCmd.Flags().StringVarP(&params.Output, "output", "o", "", "output path")
	tomlCmd.Flags().StringVar(&params.Format, "format", "json", "output format: json|yaml")
	tomlCmd.Flags().IntVar(&params.Indent, "indent", 2, "indent width, 0 for compact json")
	tomlCmd.MarkFlagsMutuallyExclusive("find", "query")

	tomlDiffCmd.Flags().StringVar(&diffFormat, "format", "yaml", "format the documents are rendered in before diffing")
	tomlCmd.AddCommand(tomlDiffCmd)
}

func tomlRun(cmd *cobra.Command, args []string) error {
	input := params.Input
	if input == "" && len(args) == 1 {
		input = args[0]
	}
	format, err := parse.ParseFormat(params.Format)
	if err != nil {
		return err
	}

	doc, err := loadInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	theLog.Debug("decoded", "input", input, "keys", len(doc))

	var out any = doc
	switch {
	case params.Find != "":
		out, err = parse.Lookup(doc, params.Find)
	case params.Query != "":
		out, err = parse.Query(doc, params.Query)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if params.Output != "" {
		f, err := os.Create(params.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
		theLog.Info("writing", "output", params.Output, "format", format)
	}
	return parse.Encode(w, out, format, params.Indent)
}

func loadInput(stdin io.Reader, input string) (map[string]any, error) {
	if input == "" || input == "-" {
		theLog.Debug("reading stdin")
		return parse.Load(stdin)
	}
	return parse.LoadFile(input)
}

func tomlDiffRun(cmd *cobra.Command, args []string) error {
	format, err := parse.ParseFormat(diffFormat)
	if err != nil {
		return err
	}
	a, err := parse.LoadFile(args[0])
	if err != nil {
		return err
	}
	b, err := parse.LoadFile(args[1])
	if err != nil {
		return err
	}
	lines, err := parse.Diff(a, b, format)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	for _, l := range lines {
		switch l.Op {
		case parse.DiffDelete:
			del.Fprintln(w, l.String())
		case parse.DiffInsert:
			ins.Fprintln(w, l.String())
		default:
			fmt.Fprintln(w, l.String())
		}
	}
	if parse.Changed(lines) {
		theLog.Debug("documents differ", "a", args[0], "b", args[1])
		return errDiffer
	}
	return nil
}
