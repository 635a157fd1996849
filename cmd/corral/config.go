package main

import (
	"errors"
	"fmt"
	"os"

	"corral/pkg/kmeans"
	"corral/pkg/pipeline"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// localConfigFile is the project-level config looked up in the working directory.
const localConfigFile = "corral.toml"

// Config holds file-backed defaults for clustering runs. Flags set on the
// command line always win over config values.
type Config struct {
	Corpus        string `toml:"corpus"`
	K             int    `toml:"k"`
	Seed          int64  `toml:"seed"`
	MaxIterations int    `toml:"max_iterations"`
	TopTerms      int    `toml:"top_terms"`
	Workers       int    `toml:"workers"`
	Golden        string `toml:"golden"`
}

// loadConfig resolves and parses the corral config file. Resolution order:
//
//  1. explicit path (--config flag), which must exist
//  2. CORRAL_CONFIG env var, which must exist
//  3. ./corral.toml, if present
//  4. $CORRAL_HOME/config.toml, if present
//
// A missing file at the two fallback locations is not an error; the zero
// Config is returned and every default comes from flags.
func loadConfig(explicit string) (*Config, error) {
	if explicit != "" {
		return readConfig(explicit)
	}
	if v := os.Getenv("CORRAL_CONFIG"); v != "" {
		return readConfig(v)
	}

	if cfg, err := readOptionalConfig(localConfigFile); cfg != nil || err != nil {
		return cfg, err
	}

	paths, err := ResolvePaths()
	if err != nil {
		return nil, err
	}
	if cfg, err := readOptionalConfig(paths.ConfigPath); cfg != nil || err != nil {
		return cfg, err
	}

	return &Config{}, nil
}

// readConfig parses the config file at path, failing if it does not exist.
func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// readOptionalConfig parses the config file at path, treating a missing
// file as (nil, nil).
func readOptionalConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// runFlags holds the flags shared by the commands that cluster a corpus.
// Values from the config file fill in any flag the user did not set.
type runFlags struct {
	config   string
	corpus   string
	k        int
	seed     int64
	maxIters int
	topTerms int
	workers  int
}

// registerCorpus registers the corpus and config flags.
func (f *runFlags) registerCorpus(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "config file (default: CORRAL_CONFIG, ./corral.toml, ~/.corral/config.toml)")
	cmd.Flags().StringVarP(&f.corpus, "corpus", "c", "", "corpus file (.sgm or .jsonl)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "encode/assemble workers (0 = one per CPU)")
}

// registerCluster registers the k-means and reporting flags.
func (f *runFlags) registerCluster(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.k, "k", "k", 4, "number of clusters")
	cmd.Flags().Int64Var(&f.seed, "seed", kmeans.DefaultSeed, "random seed for centroid selection")
	cmd.Flags().IntVar(&f.maxIters, "max-iters", kmeans.DefaultMaxIterations, "k-means iteration cap")
	cmd.Flags().IntVar(&f.topTerms, "top-terms", pipeline.DefaultTopTerms, "centroid terms reported per cluster")
}

// resolveCorpus loads the config and returns the corpus path, the
// vectorization options, and the config for further lookups.
func (f *runFlags) resolveCorpus(cmd *cobra.Command) (string, pipeline.Options, *Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return "", pipeline.Options{}, nil, err
	}

	flags := cmd.Flags()
	corpusPath := f.corpus
	if !flags.Changed("corpus") && cfg.Corpus != "" {
		corpusPath = cfg.Corpus
	}
	if corpusPath == "" {
		return "", pipeline.Options{}, nil, errors.New("no corpus file: pass --corpus or set corpus in corral.toml")
	}

	opts := pipeline.Options{Workers: f.workers}
	if !flags.Changed("workers") && cfg.Workers != 0 {
		opts.Workers = cfg.Workers
	}
	return corpusPath, opts, cfg, nil
}

// resolveCluster extends resolveCorpus with the full clustering parameters.
func (f *runFlags) resolveCluster(cmd *cobra.Command) (string, pipeline.Params, *Config, error) {
	corpusPath, opts, cfg, err := f.resolveCorpus(cmd)
	if err != nil {
		return "", pipeline.Params{}, nil, err
	}

	flags := cmd.Flags()
	p := pipeline.Params{
		Options:       opts,
		K:             f.k,
		Seed:          f.seed,
		MaxIterations: f.maxIters,
		TopTerms:      f.topTerms,
	}
	if !flags.Changed("k") && cfg.K != 0 {
		p.K = cfg.K
	}
	if !flags.Changed("seed") && cfg.Seed != 0 {
		p.Seed = cfg.Seed
	}
	if !flags.Changed("max-iters") && cfg.MaxIterations != 0 {
		p.MaxIterations = cfg.MaxIterations
	}
	if !flags.Changed("top-terms") && cfg.TopTerms != 0 {
		p.TopTerms = cfg.TopTerms
	}
	return corpusPath, p, cfg, nil
}
