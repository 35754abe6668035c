package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"vincit.fi/image-picker/api/apitype"
)

const (
	DefaultEventQueueSize = 16
	DefaultHost           = "dialog"
	DefaultLogLevel       = "INFO"
)

// paramsFile is the on-disk shape of Params.
type paramsFile struct {
	LogLevel             string `toml:"logLevel" yaml:"logLevel"`
	Mode                 string `toml:"mode" yaml:"mode"`
	Host                 string `toml:"host" yaml:"host"`
	File                 string `toml:"file" yaml:"file"`
	WatchDir             string `toml:"watchDir" yaml:"watchDir"`
	StartDir             string `toml:"startDir" yaml:"startDir"`
	Timeout              string `toml:"timeout" yaml:"timeout"`
	Journal              string `toml:"journal" yaml:"journal"`
	EventQueueSize       int    `toml:"eventQueueSize" yaml:"eventQueueSize"`
	ApplyExifOrientation *bool  `toml:"applyExifOrientation" yaml:"applyExifOrientation"`
	SilentFailures       bool   `toml:"silentFailures" yaml:"silentFailures"`
}

type Params struct {
	logLevel             string
	mode                 apitype.ReturnMode
	host                 string
	file                 string
	watchDir             string
	startDir             string
	timeout              time.Duration
	journal              string
	eventQueueSize       int
	applyExifOrientation bool
	silentFailures       bool
}

func NewEmptyParams() *Params {
	return &Params{
		logLevel:             DefaultLogLevel,
		mode:                 apitype.HandleMode,
		host:                 DefaultHost,
		file:                 "",
		watchDir:             "",
		startDir:             "",
		timeout:              0,
		journal:              "",
		eventQueueSize:       DefaultEventQueueSize,
		applyExifOrientation: true,
		silentFailures:       false,
	}
}

// LoadParams reads a TOML or YAML file chosen by extension. An empty path
// returns the defaults.
func LoadParams(path string) (*Params, error) {
	params := NewEmptyParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	file := &paramsFile{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), file); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, file); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: '%s'", filepath.Ext(path))
	}

	if err := params.apply(file); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return params, nil
}

func (s *Params) apply(file *paramsFile) error {
	if file.LogLevel != "" {
		s.logLevel = file.LogLevel
	}
	if err := s.SetMode(file.Mode); err != nil {
		return err
	}
	if file.Host != "" {
		s.host = file.Host
	}
	if file.File != "" {
		s.file = file.File
	}
	if file.WatchDir != "" {
		s.watchDir = file.WatchDir
	}
	if file.StartDir != "" {
		s.startDir = file.StartDir
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		s.timeout = timeout
	}
	if file.Journal != "" {
		s.journal = file.Journal
	}
	if file.EventQueueSize > 0 {
		s.eventQueueSize = file.EventQueueSize
	}
	if file.ApplyExifOrientation != nil {
		s.applyExifOrientation = *file.ApplyExifOrientation
	}
	s.silentFailures = file.SilentFailures
	return nil
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) Mode() apitype.ReturnMode {
	return s.mode
}

func (s *Params) Host() string {
	return s.host
}

func (s *Params) File() string {
	return s.file
}

func (s *Params) WatchDir() string {
	return s.watchDir
}

// StartDir is where native file dialogs open.
func (s *Params) StartDir() string {
	return s.startDir
}

func (s *Params) Timeout() time.Duration {
	return s.timeout
}

// Journal is the sqlite file of the pick journal. Empty means in-memory.
func (s *Params) Journal() string {
	return s.journal
}

func (s *Params) EventQueueSize() int {
	return s.eventQueueSize
}

func (s *Params) ApplyExifOrientation() bool {
	return s.applyExifOrientation
}

func (s *Params) SilentFailures() bool {
	return s.silentFailures
}

func (s *Params) SetLogLevel(logLevel string) {
	s.logLevel = logLevel
}

func (s *Params) SetMode(mode string) error {
	returnMode, err := apitype.ReturnModeFromString(mode)
	if err != nil {
		return err
	}
	s.mode = returnMode
	return nil
}

func (s *Params) SetHost(host string) {
	s.host = host
}

func (s *Params) SetFile(file string) {
	s.file = file
}

func (s *Params) SetWatchDir(watchDir string) {
	s.watchDir = watchDir
}

func (s *Params) SetStartDir(startDir string) {
	s.startDir = startDir
}

func (s *Params) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

func (s *Params) SetJournal(journal string) {
	s.journal = journal
}

func (s *Params) SetEventQueueSize(size int) {
	if size > 0 {
		s.eventQueueSize = size
	}
}

func (s *Params) SetApplyExifOrientation(apply bool) {
	s.applyExifOrientation = apply
}

func (s *Params) SetSilentFailures(silent bool) {
	s.silentFailures = silent
}
