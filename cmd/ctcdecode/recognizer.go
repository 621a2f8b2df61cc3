package main

import (
	ctcdecode "github.com/ieee0824/ctcdecode"
	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/ieee0824/ctcdecode/internal/cmdapp"
	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/pkg/errors"
)

// newRecognizer builds a recognizer from the decoder.* and dictionary.* keys.
func newRecognizer(extra ...ctcdecode.Option) (*ctcdecode.Recognizer, error) {
	alphabet := lexicon.DefaultAlphabet
	if a := cmdapp.Config.GetString("dictionary.alphabet"); a != "" {
		alphabet = a
	}
	a, err := lexicon.NewAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	if cmdapp.Config.GetInt("decoder.numClasses") == 0 {
		cmdapp.Config.Set("decoder.numClasses", a.Size()+1)
	}
	cfg, err := cmdapp.DecoderConfig()
	if err != nil {
		return nil, err
	}
	cmdapp.Log.WithField("config", cfg).Debug("Decoder config")

	opts := append([]ctcdecode.Option{
		ctcdecode.WithDecoderConfig(cfg),
		ctcdecode.WithTopPaths(cmdapp.Config.GetInt("decoder.topPaths")),
		ctcdecode.WithMultiWord(cmdapp.Config.GetBool("dictionary.multiWord")),
		ctcdecode.WithAlphabet(a),
		ctcdecode.WithLogger(cmdapp.Log),
	}, extra...)

	triePath := cmdapp.Config.GetString("dictionary.trie")
	dictPath := cmdapp.Config.GetString("dictionary.path")
	switch {
	case triePath != "" && dictPath != "":
		return nil, errors.Wrap(decoder.ErrConfig, "both dictionary.trie and dictionary.path set")
	case triePath != "":
		return ctcdecode.NewTrieRecognizer(cfg.NumClasses, triePath, opts...)
	case dictPath != "":
		return ctcdecode.NewDictionaryRecognizer(cfg.NumClasses, dictPath, opts...)
	default:
		return ctcdecode.NewRecognizer(cfg.NumClasses, opts...)
	}
}
