// Package appconfig handles the server parameter file.
//
// The file is TOML and holds the parameters the serving commands accept as
// flags, so a deployment can keep them in one place.  Secrets (database
// passwords, API keys) never live here, they stay in the environment.
package appconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/mcpost/mcpost/internal/embedding"
	"github.com/mcpost/mcpost/internal/mcp"
)

// ErrConfigInvalid is returned by Load when the file fails validation.  The
// individual problems are printed to stderr.
var ErrConfigInvalid = errors.New("config validation failed")

// Parameters is the set of server parameters that can be kept in the
// configuration file.
type Parameters struct {
	Listen    string `toml:"listen" validate:"omitempty,hostname_port"`
	Transport string `toml:"transport" validate:"omitempty,oneof=stdio http"`

	CSVFile string `toml:"csv_file"`

	Driver string `toml:"driver" validate:"omitempty,oneof=sqlite postgres"`
	DSN    string `toml:"dsn"`

	EmbeddingsURL   string  `toml:"embeddings_url" validate:"omitempty,url"`
	EmbeddingsModel string  `toml:"embeddings_model"`
	EmbeddingsRate  float64 `toml:"embeddings_rate" validate:"gte=0,lte=100"`

	Neo4jURI  string `toml:"neo4j_uri" validate:"omitempty,url"`
	Neo4jUser string `toml:"neo4j_user"`
}

// Defaults are the parameter values written by "config new".
var Defaults = Parameters{
	Listen:          mcp.DefaultAddr,
	Transport:       "http",
	CSVFile:         "data/packages.csv",
	Driver:          "sqlite",
	DSN:             "explorer.db",
	EmbeddingsURL:   "http://localhost:8080/v1/embeddings",
	EmbeddingsModel: embedding.DefaultModel,
	EmbeddingsRate:  5,
	Neo4jURI:        "bolt://localhost:7687",
	Neo4jUser:       "neo4j",
}

var (
	validate *validator.Validate

	// errTranslations renders validation failures in plain English.
	errTranslations ut.Translator
)

func init() {
	validate = validator.New()
	enLoc := en.New()
	var ok bool
	errTranslations, ok = ut.New(enLoc, enLoc).GetTranslator("en")
	if !ok {
		panic("appconfig: no english translator")
	}
	if err := entranslations.RegisterDefaultTranslations(validate, errTranslations); err != nil {
		panic(err)
	}
}

// Validate checks p against the parameter constraints.
func (p *Parameters) Validate() error {
	return validate.Struct(p)
}

// Load reads, parses and validates the parameter file.  Validation problems
// are printed to stderr and reported as ErrConfigInvalid.
func Load(filename string) (*Parameters, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := load(f)
	if err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			if err := printErrors(os.Stderr, vErr); err != nil {
				return nil, err
			}
			return nil, ErrConfigInvalid
		}
		return nil, err
	}
	return p, nil
}

func load(r io.Reader) (*Parameters, error) {
	var p Parameters
	meta, err := toml.NewDecoder(r).Decode(&p)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config: %v", undecoded)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the parameters to filename as TOML.
func Save(filename string, p *Parameters) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return save(f, p)
}

func save(w io.Writer, p *Parameters) error {
	return toml.NewEncoder(w).Encode(p)
}

func printErrors(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var wErr error
	var printErr = func(format string, a ...any) {
		if wErr != nil {
			return
		}
		_, wErr = fmt.Fprintf(w, format, a...)
	}

	printErr("Detected problems:\n")
	var vErr validator.ValidationErrors
	if !errors.As(err, &vErr) {
		return err
	}
	for i, entry := range vErr {
		printErr("\t%2d: %s\n", i+1, entry.Translate(errTranslations))
	}
	return wErr
}
