package config

// Config is the root application configuration.
type Config struct {
	Vocab      VocabConfig      `yaml:"vocab"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
	Collection CollectionConfig `yaml:"collection"`
	Log        LogConfig        `yaml:"log"`
}

// VocabConfig holds the reference vocabulary and extraction defaults.
type VocabConfig struct {
	Path                 string `yaml:"path"                   env:"JJIGAE_VOCAB_PATH"              env-default:"vocab.csv"`
	MaxVocab             int    `yaml:"max_vocab"              env:"JJIGAE_MAX_VOCAB"               env-default:"3500"`
	ExtractMinDifficulty string `yaml:"extract_min_difficulty" env:"JJIGAE_EXTRACT_MIN_DIFFICULTY" env-default:"A"`
	StudyMinDifficulty   string `yaml:"study_min_difficulty"   env:"JJIGAE_STUDY_MIN_DIFFICULTY"   env-default:"B"`
}

// AnalyzerConfig selects the morphological dictionary. An empty DictPath
// uses the dictionary embedded for TagSet.
type AnalyzerConfig struct {
	DictPath string `yaml:"dict_path" env:"JJIGAE_DICT_PATH"`
	TagSet   string `yaml:"tag_set"   env:"JJIGAE_TAG_SET"   env-default:"mecab-ko"`
}

// CollectionConfig holds the learner's collection settings.
type CollectionConfig struct {
	Path      string `yaml:"path"       env:"JJIGAE_COLLECTION_PATH" env-default:"collection.db"`
	Deck      string `yaml:"deck"       env:"JJIGAE_DECK"            env-default:"Default"`
	Workers   int    `yaml:"workers"    env:"JJIGAE_WORKERS"         env-default:"4"`
	BatchSize int    `yaml:"batch_size" env:"JJIGAE_BATCH_SIZE"      env-default:"50"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
