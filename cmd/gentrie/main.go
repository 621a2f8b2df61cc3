package main

import (
	"os"

	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/ieee0824/ctcdecode/trie"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	cmdapp.Execute(newRootCmd())
}

func newRootCmd() *cobra.Command {
	var alphabet string
	cmd := &cobra.Command{
		Use:   "gentrie <vocabulary> <trie-out>",
		Short: "Compile a vocabulary into a dictionary trie",
		Long:  `Reads a vocabulary with one word per line and writes the trie used by ctcdecode --trie`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, nodes, err := generate(args[0], args[1], alphabet)
			if err != nil {
				return err
			}
			cmdapp.Log.WithFields(logrus.Fields{"words": words, "nodes": nodes, "out": args[1]}).Info("Trie written")
			return nil
		},
	}
	cmdapp.InitApplication(cmd)
	cmd.Flags().StringVar(&alphabet, "alphabet", lexicon.DefaultAlphabet, "symbols mapped to labels 0..n-1")
	return cmd
}

// generate compiles vocabPath into a trie written to outPath.
func generate(vocabPath, outPath, alphabet string) (words, nodes int, err error) {
	a, err := lexicon.NewAlphabet(alphabet)
	if err != nil {
		return 0, 0, err
	}
	v, err := lexicon.LoadFile(vocabPath, a)
	if err != nil {
		return 0, 0, errors.Wrap(err, "load vocabulary")
	}
	root := trie.Build(v.Words())

	f, err := os.Create(outPath)
	if err != nil {
		return 0, 0, errors.Wrap(err, "create trie file")
	}
	if _, err := root.WriteTo(f); err != nil {
		f.Close()
		return 0, 0, err
	}
	if err := f.Close(); err != nil {
		return 0, 0, errors.Wrap(err, "close trie file")
	}
	return v.Size(), root.Size(), nil
}
