package main

import (
	"context"
	"io"
	"os"

	ctcdecode "github.com/ieee0824/ctcdecode"
	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/internal/document"
	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var inputPath, outputPath string
	var probabilities, greedy bool
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode sequences from a YAML or JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := newRecognizer()
			if err != nil {
				return err
			}
			in, err := openInput(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			out := cmd.OutOrStdout()
			if outputPath != "-" {
				f, err := os.Create(outputPath)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer f.Close()
				out = f
			}
			return decodeDocument(context.Background(), rec, in, out, probabilities, greedy)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "input document, - for stdin")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output document, - for stdout")
	cmd.Flags().BoolVar(&probabilities, "probabilities", false, "steps hold probabilities instead of log probabilities")
	cmd.Flags().BoolVar(&greedy, "greedy", false, "add the greedy path to every result")
	return cmd
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

// scoreReferences fills the label error count of every sequence that has a
// reference and logs the overall label error rate.
func scoreReferences(rec *ctcdecode.Recognizer, doc *document.Input, out *document.Output) error {
	var errs, total int
	for i, s := range doc.Sequences {
		if s.Reference == "" {
			continue
		}
		ref, err := rec.Alphabet.Encode(s.Reference)
		if err != nil {
			return errors.Wrapf(err, "sequence %d reference", i)
		}
		d := lexicon.EditDistance(out.Results[i].Paths[0].Labels, ref)
		out.Results[i].Errors = &d
		errs += d
		total += len(ref)
	}
	if total > 0 {
		cmdapp.Log.WithFields(logrus.Fields{"errors": errs, "labels": total}).
			Infof("Label error rate %.2f%%", 100*float64(errs)/float64(total))
	}
	return nil
}

func decodeDocument(ctx context.Context, rec *ctcdecode.Recognizer, r io.Reader, w io.Writer, probabilities, greedy bool) error {
	doc, err := document.Read(r)
	if err != nil {
		return err
	}
	doc.Probabilities = doc.Probabilities || probabilities
	inputs, seqLens := doc.Batch()

	results, err := rec.RecognizeBatch(ctx, inputs, seqLens)
	if err != nil {
		return err
	}
	out := document.NewOutput(results, rec.Text)
	if greedy {
		for i := range inputs {
			p, err := rec.Greedy(inputs[i], seqLens[i])
			if err != nil {
				return errors.Wrapf(err, "sequence %d", i)
			}
			gp := document.NewPath(p, rec.Text)
			out.Results[i].Greedy = &gp
		}
	}
	if err := scoreReferences(rec, doc, out); err != nil {
		return err
	}
	cmdapp.Log.WithField("sequences", len(results)).Debug("Decoded")
	return document.Write(w, out)
}
