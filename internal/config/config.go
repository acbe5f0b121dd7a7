// Package config holds the immutable problem/language/server definitions
// loaded once at startup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultBindAddress = "127.0.0.1"
	defaultBindPort    = 12345
)

// ProblemType selects the judging mode of a problem.
type ProblemType string

const (
	ProblemTypeStandard       ProblemType = "standard"
	ProblemTypeStrict         ProblemType = "strict"
	ProblemTypeSpj            ProblemType = "spj"
	ProblemTypeDynamicRanking ProblemType = "dynamic_ranking"
)

// Valid reports whether the problem type is one of the recognized modes.
func (t ProblemType) Valid() bool {
	switch t {
	case ProblemTypeStandard, ProblemTypeStrict, ProblemTypeSpj, ProblemTypeDynamicRanking:
		return true
	}
	return false
}

// Server holds HTTP bind settings.
type Server struct {
	BindAddress string `json:"bind_address" yaml:"bind_address"`
	BindPort    int    `json:"bind_port" yaml:"bind_port"`
}

// Addr returns the host:port string the server listens on.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.BindAddress, s.BindPort)
}

// Case defines one input/answer pair of a problem. TimeLimit is in
// microseconds; MemoryLimit is in kilobytes and informational only.
type Case struct {
	Score       float64 `json:"score" yaml:"score"`
	InputFile   string  `json:"input_file" yaml:"input_file"`
	AnswerFile  string  `json:"answer_file" yaml:"answer_file"`
	TimeLimit   int64   `json:"time_limit" yaml:"time_limit"`
	MemoryLimit int64   `json:"memory_limit" yaml:"memory_limit"`
}

// Misc carries auxiliary problem options keyed by variant name.
type Misc struct {
	SpecialJudge        []string `json:"special_judge,omitempty" yaml:"special_judge,omitempty"`
	Packing             [][]int  `json:"packing,omitempty" yaml:"packing,omitempty"`
	DynamicRankingRatio float64  `json:"dynamic_ranking_ratio,omitempty" yaml:"dynamic_ranking_ratio,omitempty"`
}

// Problem is one judge problem with its ordered cases.
type Problem struct {
	ID    int         `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Type  ProblemType `json:"type" yaml:"type"`
	Misc  Misc        `json:"misc" yaml:"misc"`
	Cases []Case      `json:"cases" yaml:"cases"`
}

// Language defines how a source file is named and compiled. Command
// tokens %INPUT% and %OUTPUT% are substituted at invocation.
type Language struct {
	Name     string   `json:"name" yaml:"name"`
	FileName string   `json:"file_name" yaml:"file_name"`
	Command  []string `json:"command" yaml:"command"`
}

// Conf is the root configuration. Immutable after Load.
type Conf struct {
	Server    Server     `json:"server" yaml:"server"`
	Problems  []Problem  `json:"problems" yaml:"problems"`
	Languages []Language `json:"languages" yaml:"languages"`
}

// Load reads and validates a config file. JSON is the canonical format;
// .yaml/.yml files are accepted as well.
func Load(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file failed: %w", err)
	}

	var cfg Conf
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config file failed: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Conf) applyDefaults() {
	if c.Server.BindAddress == "" {
		c.Server.BindAddress = defaultBindAddress
	}
	if c.Server.BindPort == 0 {
		c.Server.BindPort = defaultBindPort
	}
}

func (c *Conf) validate() error {
	seenProblems := make(map[int]bool, len(c.Problems))
	for _, prob := range c.Problems {
		if seenProblems[prob.ID] {
			return fmt.Errorf("duplicate problem id %d", prob.ID)
		}
		seenProblems[prob.ID] = true
		if !prob.Type.Valid() {
			return fmt.Errorf("problem %d: unknown type %q", prob.ID, prob.Type)
		}
		for i, cs := range prob.Cases {
			if cs.TimeLimit < 0 {
				return fmt.Errorf("problem %d case %d: negative time limit", prob.ID, i+1)
			}
		}
	}

	seenLanguages := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		if lang.Name == "" {
			return fmt.Errorf("language with empty name")
		}
		if seenLanguages[lang.Name] {
			return fmt.Errorf("duplicate language %q", lang.Name)
		}
		seenLanguages[lang.Name] = true
		if lang.FileName == "" {
			return fmt.Errorf("language %q: file_name is required", lang.Name)
		}
		if len(lang.Command) == 0 {
			return fmt.Errorf("language %q: command is required", lang.Name)
		}
	}
	return nil
}

// Problem looks up a problem definition by id.
func (c *Conf) Problem(id int) (Problem, bool) {
	for _, prob := range c.Problems {
		if prob.ID == id {
			return prob, true
		}
	}
	return Problem{}, false
}

// Language looks up a language definition by name.
func (c *Conf) Language(name string) (Language, bool) {
	for _, lang := range c.Languages {
		if lang.Name == name {
			return lang, true
		}
	}
	return Language{}, false
}

// ProblemIDs returns all configured problem ids in declaration order.
func (c *Conf) ProblemIDs() []int {
	ids := make([]int, 0, len(c.Problems))
	for _, prob := range c.Problems {
		ids = append(ids, prob.ID)
	}
	return ids
}
