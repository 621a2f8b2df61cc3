package cmdapp

import (
	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is a viper based application config
var Config = viper.New()

// Log is applications logger
var Log = logrus.New()

func setDecoderDefaults() {
	d := decoder.DefaultConfig(0)
	Config.SetDefault("decoder.beamWidth", d.BeamWidth)
	Config.SetDefault("decoder.mergeRepeated", d.MergeRepeated)
	Config.SetDefault("decoder.labelSelectionSize", d.LabelSelectionSize)
	Config.SetDefault("decoder.labelSelectionMargin", d.LabelSelectionMargin)
	Config.SetDefault("decoder.topPaths", 1)
	Config.SetDefault("dictionary.alphabet", "")
	Config.SetDefault("dictionary.multiWord", false)
}

// DecoderConfig reads the decoder.* keys.
func DecoderConfig() (decoder.Config, error) {
	cfg := decoder.Config{
		NumClasses:           Config.GetInt("decoder.numClasses"),
		BeamWidth:            Config.GetInt("decoder.beamWidth"),
		MergeRepeated:        Config.GetBool("decoder.mergeRepeated"),
		LabelSelectionSize:   Config.GetInt("decoder.labelSelectionSize"),
		LabelSelectionMargin: Config.GetFloat64("decoder.labelSelectionMargin"),
	}
	return cfg, cfg.Validate()
}
