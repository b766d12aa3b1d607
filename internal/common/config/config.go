// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	KnowledgeBase KnowledgeBaseConfig     `mapstructure:"knowledge_base"`
	Language      LanguageConfig          `mapstructure:"language"`
	GenAI         GenAIConfig             `mapstructure:"genai"`
	Cache         CacheConfig             `mapstructure:"cache"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// KnowledgeBaseConfig lists the data files tried in order before the
// bundled copy.
type KnowledgeBaseConfig struct {
	Paths       []string `mapstructure:"paths"`
	SkipBundled bool     `mapstructure:"skip_bundled"`
}

type LanguageConfig struct {
	Detector string `mapstructure:"detector"` // weighted | keyword-count
}

// GenAIConfig configures the fallback responder.
type GenAIConfig struct {
	Provider          string  `mapstructure:"provider"` // gemini | openai
	BaseURL           string  `mapstructure:"base_url"`
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	Timeout           int     `mapstructure:"timeout"` // milliseconds
	MaxRetries        int     `mapstructure:"max_retries"`
	Temperature       float64 `mapstructure:"temperature"`
	TopP              float64 `mapstructure:"top_p"`
	TopK              int     `mapstructure:"top_k"`
	SystemPrompt      string  `mapstructure:"system_prompt"`
	RequestsPerMinute int     `mapstructure:"requests_per_minute"`
}

// CacheConfig enables the redis-backed fallback reply cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// DefaultSystemPrompt is sent as the system instruction when none is configured.
const DefaultSystemPrompt = "You are GearBot, Gear9's assistant. Always be concise, factual, and professional. " +
	"Answer in the same language as the user's last message (French or English). Do not greet unless explicitly asked. " +
	"Prefer the company context provided (name, address, about, services, expertises, projects, awards). " +
	"If information is missing, say so briefly and offer alternatives."
