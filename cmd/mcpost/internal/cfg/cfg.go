// Package cfg contains common configuration variables.
package cfg

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/rusq/osenv/v2"

	"github.com/mcpost/mcpost/internal/appconfig"
	"github.com/mcpost/mcpost/internal/embedding"
	"github.com/mcpost/mcpost/internal/mcp"
)

var (
	TraceFile string
	LogFile   string
	JSONLog   bool
	Verbose   bool

	ConfigFile string

	Transport string
	Listen    string

	CSVFile string

	Driver string
	DSN    string

	EmbeddingsURL    string
	EmbeddingsModel  string
	EmbeddingsAPIKey string
	EmbeddingsRate   float64

	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
)

// Log is the application logger.  Package main replaces it with the
// configured logger during startup; commands should prefer it over
// slog.Default().
var Log = slog.Default()

// LogLevel is the dynamic level shared by the log handlers installed in
// package main.
var LogLevel = new(slog.LevelVar)

// SetDebugLevel switches all handlers that use LogLevel to debug.
func SetDebugLevel() {
	LogLevel.Set(slog.LevelDebug)
}

type FlagMask int

const (
	DefaultFlags   FlagMask = 0
	OmitConfigFlag FlagMask = 1 << iota
	OmitTransportFlags
	OmitCSVFlag
	OmitDriverFlag
	OmitDSNFlag
	OmitEmbeddingsFlags
	OmitNeo4jFlags

	OmitAll = OmitConfigFlag |
		OmitTransportFlags |
		OmitCSVFlag |
		OmitDriverFlag |
		OmitDSNFlag |
		OmitEmbeddingsFlags |
		OmitNeo4jFlags
)

// SetBaseFlags sets base flags
func SetBaseFlags(fs *flag.FlagSet, mask FlagMask) {
	fs.StringVar(&TraceFile, "trace", os.Getenv("TRACE_FILE"), "trace `filename`")
	fs.StringVar(&LogFile, "log", os.Getenv("LOG_FILE"), "log `file`, if not specified, messages are printed to STDERR")
	fs.BoolVar(&JSONLog, "log-json", osenv.Value("JSON_LOG", false), "log in JSON format")
	fs.BoolVar(&Verbose, "v", osenv.Value("DEBUG", false), "verbose messages")

	if mask&OmitConfigFlag == 0 {
		fs.StringVar(&ConfigFile, "config", "", "server parameters `file` in TOML format.\nYou can generate one with default values with 'mcpost config new'")
	}
	if mask&OmitTransportFlags == 0 {
		fs.StringVar(&Transport, "transport", osenv.Value("MCP_TRANSPORT", "stdio"), "MCP `transport`, one of \"stdio\" or \"http\"")
		fs.StringVar(&Listen, "listen", osenv.Value("MCP_LISTEN", mcp.DefaultAddr), "`address` to listen on when -transport=http")
	}
	if mask&OmitCSVFlag == 0 {
		fs.StringVar(&CSVFile, "csv", osenv.Value("CSV_FILE", "data/packages.csv"), "package store CSV `file`")
	}
	if mask&OmitDriverFlag == 0 {
		fs.StringVar(&Driver, "driver", osenv.Value("DB_DRIVER", "sqlite"), "database `driver`, one of \"sqlite\" or \"postgres\"")
	}
	if mask&OmitDSNFlag == 0 {
		fs.StringVar(&DSN, "dsn", osenv.Value("DSN", ""), "database `DSN`.  When empty, sqlite uses \"explorer.db\", and the\npostgres DSN is assembled from the POSTGRES_* environment variables")
	}
	if mask&OmitEmbeddingsFlags == 0 {
		fs.StringVar(&EmbeddingsURL, "embeddings-url", osenv.Value("EMBEDDINGS_URL", "http://localhost:8080/v1/embeddings"), "OpenAI-compatible embeddings `endpoint`")
		fs.StringVar(&EmbeddingsModel, "embeddings-model", osenv.Value("EMBEDDINGS_MODEL", embedding.DefaultModel), "embeddings `model` name")
		fs.StringVar(&EmbeddingsAPIKey, "embeddings-api-key", osenv.Secret("EMBEDDINGS_API_KEY", ""), "embeddings API `key`, if the endpoint requires one\n(environment: EMBEDDINGS_API_KEY)")
		fs.Float64Var(&EmbeddingsRate, "embeddings-rate", 5, "embeddings `rate` limit in requests per second")
	}
	if mask&OmitNeo4jFlags == 0 {
		fs.StringVar(&Neo4jURI, "neo4j", osenv.Value("NEO4J_URI", ""), "neo4j `URI`.  When empty, assembled from the NEO4J_HOST and\nNEO4J_PORT environment variables")
		fs.StringVar(&Neo4jUser, "neo4j-user", osenv.Value("NEO4J_USER", "neo4j"), "neo4j `user`")
		fs.StringVar(&Neo4jPassword, "neo4j-password", osenv.Secret("NEO4J_PASSWORD", "neo4jpassword"), "neo4j `password` (environment: NEO4J_PASSWORD)")
	}
	setDevFlags(fs, mask)
}

// PostgresDSN returns the DSN for postgres connections.  An explicit -dsn
// value wins; otherwise the DSN is assembled from the POSTGRES_* environment
// variables.
func PostgresDSN() string {
	if DSN != "" {
		return DSN
	}
	var (
		host = osenv.Value("POSTGRES_HOST", "localhost")
		port = osenv.Value("POSTGRES_PORT", "5432")
		user = osenv.Value("POSTGRES_USER", "mcp_user")
		pass = osenv.Secret("POSTGRES_PASSWORD", "mcp_password")
		name = osenv.Value("POSTGRES_DB", "mcp_db")
	)
	return fmt.Sprintf("postgres://%s:%s@%s/%s", user, pass, net.JoinHostPort(host, port), name)
}

// Neo4jAddr returns the URI for the neo4j connection.  An explicit -neo4j
// value wins; otherwise the URI is assembled from the NEO4J_HOST and
// NEO4J_PORT environment variables.
func Neo4jAddr() string {
	if Neo4jURI != "" {
		return Neo4jURI
	}
	host := osenv.Value("NEO4J_HOST", "neo4j")
	port := osenv.Value("NEO4J_PORT", "7687")
	return "bolt://" + net.JoinHostPort(host, port)
}

// FromConfig backfills parameters from the TOML parameters file given with
// the -config flag.  Values set on the command line win.  fs must be the
// already parsed flag set of the command.
func FromConfig(fs *flag.FlagSet) error {
	if ConfigFile == "" {
		return nil
	}
	p, err := appconfig.Load(ConfigFile)
	if err != nil {
		return fmt.Errorf("parameters file %q: %w", ConfigFile, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	apply := func(flagName string, dst *string, val string) {
		if !set[flagName] && val != "" {
			*dst = val
		}
	}

	apply("transport", &Transport, p.Transport)
	apply("listen", &Listen, p.Listen)
	apply("csv", &CSVFile, p.CSVFile)
	apply("driver", &Driver, p.Driver)
	apply("dsn", &DSN, p.DSN)
	apply("embeddings-url", &EmbeddingsURL, p.EmbeddingsURL)
	apply("embeddings-model", &EmbeddingsModel, p.EmbeddingsModel)
	apply("neo4j", &Neo4jURI, p.Neo4jURI)
	apply("neo4j-user", &Neo4jUser, p.Neo4jUser)
	if !set["embeddings-rate"] && p.EmbeddingsRate > 0 {
		EmbeddingsRate = p.EmbeddingsRate
	}
	return nil
}
