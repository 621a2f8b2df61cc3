package main

import (
	"io"

	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/labstack/gommon/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cmdapp.Execute(newRootCmd())
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctcdecode",
		Short: "CTC beam search decoder",
		Long:  `Decodes per-step class scores of a CTC model into label sequences, optionally restricted to a dictionary`,
	}
	cmdapp.InitApplication(rootCmd)

	f := rootCmd.PersistentFlags()
	f.Int("num-classes", 0, "number of classes including blank (default alphabet size + 1)")
	f.Int("beam-width", 100, "beam width")
	f.Int("top-paths", 1, "number of paths to return")
	f.Bool("merge-repeated", true, "merge repeated labels not separated by blank")
	f.Int("label-selection-size", 0, "expand only the top K labels per step (0 = all)")
	f.Float64("label-selection-margin", -1, "expand only labels within margin of the best (<0 = off)")
	f.String("dict", "", "dictionary file, one word per line")
	f.String("trie", "", "trie file generated by gentrie")
	f.String("alphabet", "", "dictionary alphabet (default a-z)")
	f.Bool("multi-word", false, "accept sequences of dictionary words")
	bind(rootCmd, map[string]string{
		"decoder.numClasses":           "num-classes",
		"decoder.beamWidth":            "beam-width",
		"decoder.topPaths":             "top-paths",
		"decoder.mergeRepeated":        "merge-repeated",
		"decoder.labelSelectionSize":   "label-selection-size",
		"decoder.labelSelectionMargin": "label-selection-margin",
		"dictionary.path":              "dict",
		"dictionary.trie":              "trie",
		"dictionary.alphabet":          "alphabet",
		"dictionary.multiWord":         "multi-word",
	})

	rootCmd.AddCommand(newDecodeCmd(), newServeCmd())
	return rootCmd
}

func bind(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		cmdapp.CheckOrPanic(cmdapp.Config.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)), "bind "+flag)
	}
}

func printBanner(w io.Writer) {
	banner := `
       __            __                    __   
  ____/ /______  ___/ /__ _______  ___ ___/ /__ 
 / __/ __/ __/ / _  / -_) __/ _ \/ _ / _  / -_)
 \__/\__/\__/  \_,_/\__/\__/\___/\_,_/\_,_/\__/  %s
%s
________________________________________________________

`
	cl := color.New()
	cl.SetOutput(w)
	cl.Printf(banner, cl.Red(version), cl.Green("github.com/ieee0824/ctcdecode"))
}
