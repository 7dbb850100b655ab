package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ytaudience/internal/assets"
	"github.com/patrickprogramme/ytaudience/internal/dataset"
	"github.com/patrickprogramme/ytaudience/internal/fsutil"
	"github.com/patrickprogramme/ytaudience/pkg/model"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 2

const DefaultFileName = "ytaudience.yaml"

// Variables d'environnement reconnues (facultatives, prioritaires sur le fichier).
const (
	EnvRoot      = "YTAUDIENCE_ROOT"
	EnvOutputDir = "YTAUDIENCE_OUTPUT_DIR"
	EnvLogLevel  = "YTAUDIENCE_LOG_LEVEL"
)

// ChannelRule : un libellé de chaîne et les sous-chaînes cherchées dans le
// nom du dossier (insensible à la casse). Match vide -> le libellé.
type ChannelRule struct {
	Label string   `yaml:"label"`
	Match []string `yaml:"match,omitempty"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	CommentsRoot string `yaml:"comments_root"`
	OutputDir    string `yaml:"output_dir"`

	// Chaînes
	Channels       []ChannelRule `yaml:"channels"`
	UnknownFolders string        `yaml:"unknown_folders"` // keep | skip

	// Analyse
	MaxChannelCount int `yaml:"max_channel_count"` // buckets exportés : 1..N
	TopUsers        int `yaml:"top_users"`

	Corpus struct {
		Mode      string `yaml:"mode"` // clustering | all
		MinWords  int    `yaml:"min_words"`
		StripHTML bool   `yaml:"strip_html"`
	} `yaml:"corpus"`

	Export struct {
		Detailed   bool   `yaml:"detailed"`
		SQLitePath string `yaml:"sqlite_path"` // vide : pas d'export SQLite
	} `yaml:"export"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console | json
	} `yaml:"log"`

	CopyToClipboard bool `yaml:"copy_to_clipboard"`

	ConfigVersion int `yaml:"config_version"`

	// version 1 : remplacé par comments_root
	LegacyCommentsFolder string `yaml:"comments_folder,omitempty"`

	configFilePath string
	backupPath     string // renseigné si Load a migré le fichier
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.CommentsRoot = "VideoComments"
	c.OutputDir = "."

	c.Channels = []ChannelRule{
		{Label: "India", Match: []string{"india"}},
		{Label: "Pakistan", Match: []string{"pakistan"}},
		{Label: "Bangladesh", Match: []string{"bangladesh"}},
	}
	c.UnknownFolders = string(dataset.PolicyKeep)

	c.MaxChannelCount = 3
	c.TopUsers = 10

	c.Corpus.Mode = "clustering"
	c.Corpus.MinWords = 5
	c.Corpus.StripHTML = true

	c.Export.Detailed = true
	c.Export.SQLitePath = ""

	c.Log.Level = "info"
	c.Log.Format = "console"

	c.CopyToClipboard = false

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// un fichier sans config_version est antérieur au versionnage
	cfg.ConfigVersion = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

// Path retourne le chemin du fichier chargé.
func (c *Config) Path() string {
	return c.configFilePath
}

// Upgraded indique si Load a migré le fichier, et retourne la sauvegarde créée.
func (c *Config) Upgraded() (backup string, ok bool) {
	return c.backupPath, c.backupPath != ""
}

func (c *Config) normalizeConfig() {
	c.CommentsRoot = filepath.Clean(strings.TrimSpace(c.CommentsRoot))
	c.OutputDir = filepath.Clean(strings.TrimSpace(c.OutputDir))

	rules := c.Channels[:0]
	for _, r := range c.Channels {
		r.Label = strings.TrimSpace(r.Label)
		if r.Label == "" {
			continue
		}
		rules = append(rules, r)
	}
	c.Channels = rules

	c.UnknownFolders = strings.TrimSpace(strings.ToLower(c.UnknownFolders))
	if c.UnknownFolders == "" {
		c.UnknownFolders = string(dataset.PolicyKeep)
	}

	if c.MaxChannelCount <= 0 {
		c.MaxChannelCount = 3
	}
	if c.TopUsers <= 0 {
		c.TopUsers = 10
	}

	c.Corpus.Mode = strings.TrimSpace(strings.ToLower(c.Corpus.Mode))
	if c.Corpus.Mode == "" {
		c.Corpus.Mode = "clustering"
	}
	if c.Corpus.MinWords <= 0 {
		c.Corpus.MinWords = 5
	}

	if p := strings.TrimSpace(c.Export.SQLitePath); p != "" {
		c.Export.SQLitePath = filepath.Clean(p)
	}

	c.Log.Level = strings.TrimSpace(strings.ToLower(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Format = strings.TrimSpace(strings.ToLower(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// ApplyEnv surcharge les valeurs du fichier par les variables d'environnement
// présentes (lookup : os.LookupEnv en production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvRoot); ok && strings.TrimSpace(v) != "" {
		c.CommentsRoot = v
	}
	if v, ok := lookup(EnvOutputDir); ok && strings.TrimSpace(v) != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = v
	}
	c.normalizeConfig()
}

// Rules convertit les règles de chaînes pour le walker.
func (c *Config) Rules() []dataset.Rule {
	out := make([]dataset.Rule, 0, len(c.Channels))
	for _, r := range c.Channels {
		out = append(out, dataset.Rule{Label: model.Channel(r.Label), Match: r.Match})
	}
	return out
}

// Labels retourne les libellés configurés, dans l'ordre du fichier.
func (c *Config) Labels() []model.Channel {
	out := make([]model.Channel, 0, len(c.Channels))
	for _, r := range c.Channels {
		out = append(out, model.Channel(r.Label))
	}
	return out
}

// Policy retourne la politique des dossiers non reconnus (validée par Validate).
func (c *Config) Policy() dataset.Policy {
	p, err := dataset.ParsePolicy(c.UnknownFolders)
	if err != nil {
		return dataset.PolicyKeep
	}
	return p
}
